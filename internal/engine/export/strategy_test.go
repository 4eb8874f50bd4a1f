package export_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/core/ports/mocks"
	"go.trai.ch/quire/internal/engine/export"
	"go.uber.org/mock/gomock"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func strategy(t *testing.T, kind domain.TaskKind, renderer ports.PageRenderer) export.Strategy {
	t.Helper()
	s, ok := export.StrategyFor(kind, renderer)
	require.True(t, ok)
	assert.Equal(t, kind, s.Kind())
	return s
}

func TestStrategyFor(t *testing.T) {
	for _, kind := range []domain.TaskKind{domain.KindPreview, domain.KindQuery, domain.KindExportMarkdown} {
		_, ok := export.StrategyFor(kind, nil)
		assert.False(t, ok, kind)
	}
	s, ok := export.StrategyFor(domain.KindExportHTML, nil)
	require.True(t, ok)
	assert.Equal(t, domain.VariantHTML, s.Variant())
}

func TestPNGStrategy_FirstPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	doc := pagedDoc(3)
	renderer.EXPECT().RasterizePage(gomock.Any(), doc, doc.Pages[0], 72.0, "").Return(solid(4, 6, color.Black), nil)

	task := domain.ExportPNGTask{ExportTask: domain.ExportTask{ID: "png"}, PPI: 72}
	task.SelectPages(domain.PageSelection{})

	out, err := strategy(t, domain.KindExportPNG, renderer).Run(t.Context(), nil, doc, task)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 6), img.Bounds())
}

func TestPNGStrategy_MergeStacksPagesWithGap(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	doc := pagedDoc(2)
	red := color.RGBA{R: 0xff, A: 0xff}
	renderer.EXPECT().RasterizePage(gomock.Any(), doc, gomock.Any(), 144.0, "#fff").Return(solid(10, 5, red), nil).Times(2)

	task := domain.ExportPNGTask{ExportTask: domain.ExportTask{ID: "png"}, Fill: "#fff"}
	task.SelectPages(domain.PageSelection{Merged: true, Gap: 1.5})

	out, err := strategy(t, domain.KindExportPNG, renderer).Run(t.Context(), nil, doc, task)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	// 1.5pt at 144 ppi is 3px.
	assert.Equal(t, image.Rect(0, 0, 10, 13), img.Bounds())

	r, g, b, _ := img.At(0, 6).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "gap is filled")
	r, g, b, _ = img.At(0, 9).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b}, "second page starts after the gap")
}

func TestPNGStrategy_PageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	s := strategy(t, domain.KindExportPNG, renderer)

	_, err := s.Run(t.Context(), nil, pagedDoc(2), domain.ExportPNGTask{ExportTask: domain.ExportTask{ID: "png"}})
	require.ErrorContains(t, err, domain.ErrMultiplePages.Error())

	none := domain.ExportPNGTask{ExportTask: domain.ExportTask{ID: "png", Transform: []domain.ExportTransform{
		{Pages: &domain.PagesTransform{Ranges: []domain.PageRange{{Start: 5}}}},
	}}}
	_, err = s.Run(t.Context(), nil, pagedDoc(2), none)
	require.ErrorContains(t, err, domain.ErrNoPagesSelected.Error())

	badFill := domain.ExportPNGTask{ExportTask: domain.ExportTask{ID: "png"}, Fill: "chartreuse-ish"}
	_, err = s.Run(t.Context(), nil, pagedDoc(1), badFill)
	require.ErrorContains(t, err, domain.ErrInvalidColor.Error())

	_, err = s.Run(t.Context(), nil, pagedDoc(1), domain.ExportSVGTask{})
	require.ErrorContains(t, err, domain.ErrTaskNotSupported.Error())
}

func TestSVGStrategy_Merge(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	doc := pagedDoc(2)
	renderer.EXPECT().SVGPage(gomock.Any(), doc, doc.Pages[0]).Return(`<?xml version="1.0"?><svg id="p1"/>`, nil)
	renderer.EXPECT().SVGPage(gomock.Any(), doc, doc.Pages[1]).Return(`<svg id="p2"/>`, nil)

	task := domain.ExportSVGTask{ExportTask: domain.ExportTask{ID: "svg"}}
	task.SelectPages(domain.PageSelection{Merged: true, Gap: 10})

	out, err := strategy(t, domain.KindExportSVG, renderer).Run(t.Context(), nil, doc, task)
	require.NoError(t, err)

	svg := string(out)
	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="100pt" height="410pt"`))
	assert.Contains(t, svg, "<g transform=\"translate(0 0)\">\n<svg id=\"p1\"/>")
	assert.Contains(t, svg, "<g transform=\"translate(0 210)\">\n<svg id=\"p2\"/>")
	assert.NotContains(t, svg, "<?xml")
}

func TestSVGStrategy_SinglePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	doc := pagedDoc(1)
	renderer.EXPECT().SVGPage(gomock.Any(), doc, doc.Pages[0]).Return(`<svg/>`, nil)

	out, err := strategy(t, domain.KindExportSVG, renderer).Run(t.Context(), nil, doc, domain.ExportSVGTask{})
	require.NoError(t, err)
	assert.Equal(t, `<svg/>`, string(out))
}

func TestPDFStrategy_PassesOptionsAndSubset(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	doc := pagedDoc(4)
	ts := int64(1700000000)

	task := domain.ExportPDFTask{
		ExportTask: domain.ExportTask{ID: "pdf", Transform: []domain.ExportTransform{
			{Pages: &domain.PagesTransform{Ranges: []domain.PageRange{{Start: 2, End: 3}}}},
		}},
		PDFStandards:      []domain.PDFStandard{domain.PDF17},
		CreationTimestamp: &ts,
	}
	renderer.EXPECT().
		PDF(gomock.Any(), gomock.Any(), ports.PDFOptions{Standards: task.PDFStandards, CreationTimestamp: &ts}).
		DoAndReturn(func(_ any, got *domain.Document, _ ports.PDFOptions) ([]byte, error) {
			require.Len(t, got.Pages, 2)
			assert.Equal(t, 2, got.Pages[0].Number)
			assert.Len(t, doc.Pages, 4, "the cached document is not modified")
			return []byte("%PDF"), nil
		})

	out, err := strategy(t, domain.KindExportPDF, renderer).Run(t.Context(), nil, doc, task)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
}

func TestTextStrategy_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockPageRenderer(ctrl)
	renderer.EXPECT().Text(gomock.Any(), gomock.Any()).Return("", assert.AnError)

	_, err := strategy(t, domain.KindExportText, renderer).Run(t.Context(), nil, pagedDoc(1), domain.ExportTextTask{})
	require.ErrorContains(t, err, domain.ErrRenderFailed.Error())
}
