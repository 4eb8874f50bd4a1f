package domain

import (
	"encoding/json"
	"regexp"

	"go.trai.ch/zerr"
)

var validTaskIDRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// MarshalTask encodes a task as a JSON object tagged with its kind under "type".
func MarshalTask(t ProjectTask) ([]byte, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(t.Kind())
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

// UnmarshalTask decodes a tagged task object and validates it.
func UnmarshalTask(data []byte) (ProjectTask, error) {
	var probe struct {
		Type TaskKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	var (
		task ProjectTask
		err  error
	)
	switch probe.Type {
	case "":
		return nil, ErrMissingTaskType
	case KindPreview:
		task, err = decodeTask[PreviewTask](data)
	case KindExportPDF:
		task, err = decodeTask[ExportPDFTask](data)
	case KindExportPNG:
		task, err = decodeTask[ExportPNGTask](data)
	case KindExportSVG:
		task, err = decodeTask[ExportSVGTask](data)
	case KindExportHTML:
		task, err = decodeTask[ExportHTMLTask](data)
	case KindExportMarkdown:
		task, err = decodeTask[ExportMarkdownTask](data)
	case KindExportTeX:
		task, err = decodeTask[ExportTeXTask](data)
	case KindExportText:
		task, err = decodeTask[ExportTextTask](data)
	case KindQuery:
		task, err = decodeTask[QueryTask](data)
	default:
		return nil, zerr.With(ErrUnknownTaskType, "type", string(probe.Type))
	}
	if err != nil {
		return nil, err
	}
	if err := ValidateTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

func decodeTask[T ProjectTask](data []byte) (ProjectTask, error) {
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateTask checks identifiers and transforms of a task.
func ValidateTask(t ProjectTask) error {
	if !validTaskIDRegex.MatchString(t.TaskID()) {
		return zerr.With(ErrInvalidTaskID, "task_id", t.TaskID())
	}
	spec := t.Spec()
	if spec == nil {
		return nil
	}
	for i, tr := range spec.Transform {
		if err := tr.Validate(); err != nil {
			return zerr.With(zerr.With(err, "task_id", t.TaskID()), "transform", i)
		}
	}
	return nil
}

// TaskSpec wraps a ProjectTask so lists of tasks can be encoded with encoding/json.
type TaskSpec struct {
	Task ProjectTask
}

// MarshalJSON implements json.Marshaler.
func (s TaskSpec) MarshalJSON() ([]byte, error) {
	return MarshalTask(s.Task)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *TaskSpec) UnmarshalJSON(data []byte) error {
	t, err := UnmarshalTask(data)
	if err != nil {
		return err
	}
	s.Task = t
	return nil
}
