package v1

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	pipeerr "github.com/classcal/classcal/internal/errors"
	"github.com/classcal/classcal/server/internal/observability"
)

// downloadName is the fixed display name of the generated calendar.
const downloadName = "schedule.ics"

// allowedContentTypes restricts uploads to the image formats the vision
// provider accepts. Anything else is rejected before any core logic runs.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ConvertScheduleImage handles POST /api/v1/schedules/image.
//
// It validates the uploaded image, stores it under a unique name, runs the
// conversion pipeline, and streams the generated calendar back as a
// downloadable attachment. The uploaded image is removed on every exit path.
func (s *APIV1Service) ConvertScheduleImage(c echo.Context) error {
	reqCtx := observability.NewRequestContext(slog.Default())
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image upload")
	}
	if contentType := fileHeader.Header.Get("Content-Type"); !allowedContentTypes[contentType] {
		reqCtx.Warn("rejected upload",
			slog.String("content_type", contentType),
			slog.String(observability.LogFieldErrorCode, string(pipeerr.ErrCodeInvalidInput)),
		)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image type, only JPEG and PNG are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}

	uploadPath, err := s.Store.SaveUpload(fileHeader.Filename, data)
	if err != nil {
		reqCtx.Error("failed to store upload", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save image")
	}
	// Uploads never outlive the request, whichever way it ends.
	defer func() {
		if err := s.Store.RemoveUpload(uploadPath); err != nil {
			reqCtx.Error("failed to remove upload", err)
		}
	}()

	reqCtx.Info("conversion started",
		slog.Int(observability.LogFieldImageBytes, len(data)),
	)

	doc, summary, err := s.ScheduleService.Convert(ctx, uploadPath)
	if err != nil {
		code := pipeerr.GetCodeFromError(err, pipeerr.ErrCodeExtractionFailed)
		reqCtx.Error("conversion failed", err,
			slog.String(observability.LogFieldErrorCode, string(code)),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
		)
		return echo.NewHTTPError(httpStatusForCode(code), err.Error())
	}

	reqCtx.Info("conversion finished",
		slog.Int(observability.LogFieldEventCount, summary.Decoded),
		slog.Int(observability.LogFieldEmittedCount, summary.Emitted),
		slog.Int(observability.LogFieldSkippedCount, len(summary.Skipped)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)

	f, err := os.Open(doc.Path)
	if err != nil {
		reqCtx.Error("failed to open calendar document", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read calendar document")
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+downloadName+`"`)
	return c.Stream(http.StatusOK, "text/calendar; charset=utf-8", f)
}

func httpStatusForCode(code pipeerr.ErrorCode) int {
	switch code {
	case pipeerr.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case pipeerr.ErrCodeContextCanceled:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
