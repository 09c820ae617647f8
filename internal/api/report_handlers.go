package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/service"
)

// Report formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getReport",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/report",
		Summary:     "Export weekly report",
		Description: "Renders the weekly report as HTML or Markdown",
		Tags:        []string{"Reports"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Weekly report",
				Content: map[string]*huma.MediaType{
					"text/html":     {},
					"text/markdown": {},
				},
			},
		},
	}, s.handleGetReport)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReportChart",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/report/chart.png",
		Summary:     "EXP by module chart",
		Tags:        []string{"Reports"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG bar chart",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, s.handleGetReportChart)

	huma.Register(s.api, huma.Operation{
		OperationID: "sendReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{id}/report/send",
		Summary:     "Mail weekly report",
		Description: "Sends the weekly report to the configured parent address. Limited per profile.",
		Tags:        []string{"Reports"},
	}, s.handleSendReport)
}

// ReportInput selects a profile's report and its format.
type ReportInput struct {
	ID     string `path:"id" doc:"Profile ID"`
	Format string `query:"format" doc:"html (default) or markdown"`
}

// FileOutput is a raw document response.
type FileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// SendReportOutput wraps the delivery result.
type SendReportOutput struct {
	Body *service.SendResult
}

func (s *Server) handleGetReport(ctx context.Context, input *ReportInput) (*FileOutput, error) {
	format := input.Format
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatMarkdown {
		return nil, s.fail(ctx, "export report", domainerrors.Validationf("unknown format %q", format))
	}

	r, err := s.services.Report.Build(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "export report", err)
	}

	out := &FileOutput{}
	var body, ext string
	if format == FormatMarkdown {
		body, err = r.Markdown()
		out.ContentType, ext = "text/markdown; charset=utf-8", "md"
	} else {
		body, err = r.HTML()
		out.ContentType, ext = "text/html; charset=utf-8", "html"
	}
	if err != nil {
		return nil, s.fail(ctx, "export report", domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to render report"))
	}

	out.ContentDisposition = fmt.Sprintf("inline; filename=%q", r.Filename()+"."+ext)
	out.Body = []byte(body)
	return out, nil
}

func (s *Server) handleGetReportChart(ctx context.Context, input *ProfileIDInput) (*FileOutput, error) {
	var buf bytes.Buffer
	if err := s.services.Report.Chart(ctx, input.ID, &buf); err != nil {
		return nil, s.fail(ctx, "render chart", err)
	}
	return &FileOutput{
		ContentType: "image/png",
		Body:        buf.Bytes(),
	}, nil
}

func (s *Server) handleSendReport(ctx context.Context, input *ProfileIDInput) (*SendReportOutput, error) {
	result, err := s.services.Report.Send(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "send report", err)
	}
	return &SendReportOutput{Body: result}, nil
}
