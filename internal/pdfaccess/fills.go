package pdfaccess

import (
	"github.com/ternarybob/arbor"
	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/eurostatements/statementcore/pkg/models"
)

// extractFills walks a page's content stream and collects every filled
// rectangle, resolving its alpha from the ExtGState active when the fill
// operator runs. Fills with negligible opacity are still returned;
// BlockSegmenter decides the opacity threshold that makes one a separator.
func extractFills(page *model.PdfPage, logger arbor.ILogger) ([]models.Fill, error) {
	contents, err := page.GetAllContentStreams()
	if err != nil {
		return nil, err
	}

	parser := contentstream.NewContentStreamParser(contents)
	operations, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	var fills []models.Fill
	var pendingRects []models.Rect
	alpha := 1.0

	processor := contentstream.NewContentStreamProcessor(*operations)
	processor.AddHandler(contentstream.HandlerConditionEnumAllOperands, "",
		func(op *contentstream.ContentStreamOperation, gs contentstream.GraphicsState, resources *model.PdfPageResources) error {
			switch op.Operand {
			case "re":
				if len(op.Params) != 4 {
					return nil
				}
				x, _ := floatParam(op.Params[0])
				y, _ := floatParam(op.Params[1])
				w, _ := floatParam(op.Params[2])
				h, _ := floatParam(op.Params[3])
				pendingRects = append(pendingRects, models.Rect{X0: x, Y0: y, X1: x + w, Y1: y + h})
			case "gs":
				if len(op.Params) != 1 || resources == nil {
					return nil
				}
				name, ok := core.GetName(op.Params[0])
				if !ok {
					return nil
				}
				if extGState, found := resources.GetExtGState(core.PdfObjectName(*name)); found {
					if dict, ok := core.GetDict(extGState); ok {
						if ca, ok := core.GetNumberAsFloat(dict.Get("ca")); ok {
							alpha = ca
						}
					}
				}
			case "f", "F", "f*", "b", "b*", "B", "B*":
				for _, r := range pendingRects {
					fills = append(fills, models.Fill{Rect: r, Opacity: alpha})
				}
				pendingRects = nil
			case "n", "W", "W*":
				pendingRects = nil
			}
			return nil
		})

	if err := processor.Process(page.Resources); err != nil {
		if logger != nil {
			logger.Debug().Err(err).Msg("pdfaccess: content stream processing ended early")
		}
	}

	return fills, nil
}

func floatParam(obj core.PdfObject) (float64, bool) {
	return core.GetNumberAsFloat(obj)
}
