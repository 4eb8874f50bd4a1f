package domain

// SpanCompile names the span covering the compilation of a round.
const SpanCompile = "Compiling"

// Span attribute keys recorded by export rounds.
const (
	AttrRound    = "quire.round"
	AttrRevision = "quire.revision"
	AttrCompiled = "quire.compiled"
	AttrKind     = "quire.kind"
	AttrPath     = "quire.path"
	AttrSkipped  = "quire.skipped"
)
