/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/jung-kurt/gofpdf"

	"github.com/Seednode/constellation/board"
)

const (
	exportMargin    = 10.0 // mm
	exportLineWidth = 0.6  // mm
)

// bounds returns the bounding box of every point in paths.
func bounds(paths []board.Stroke) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, path := range paths {
		for _, p := range path {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	return minX, minY, maxX, maxY
}

// fitToPage maps board coordinates onto a page of the given size, scaled
// uniformly to fit inside the margins and centered. Spans are taken in
// half units so points near opposite float64 limits do not overflow.
func fitToPage(paths []board.Stroke, pageW, pageH float64) func(board.Point) (float64, float64) {
	boxW, boxH := pageW-2*exportMargin, pageH-2*exportMargin

	minX, minY, maxX, maxY := bounds(paths)
	halfX, halfY := maxX/2-minX/2, maxY/2-minY/2

	scale := 1.0
	switch {
	case halfX > 0 && halfY > 0:
		scale = math.Min(boxW/halfX, boxH/halfY)
	case halfX > 0:
		scale = boxW / halfX
	case halfY > 0:
		scale = boxH / halfY
	}
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	offX := exportMargin + (boxW-halfX*scale)/2
	offY := exportMargin + (boxH-halfY*scale)/2

	return func(p board.Point) (float64, float64) {
		return offX + (p.X/2-minX/2)*scale, offY + (p.Y/2-minY/2)*scale
	}
}

// renderPDF draws paths onto a landscape A4 page.
func renderPDF(w io.Writer, paths []board.Stroke) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Constellation", true)
	pdf.SetCreator("constellation v"+releaseVersion, true)
	pdf.AddPage()

	if len(paths) == 0 {
		return pdf.Output(w)
	}

	pageW, pageH := pdf.GetPageSize()
	project := fitToPage(paths, pageW, pageH)

	pdf.SetDrawColor(0, 139, 139)
	pdf.SetFillColor(0, 139, 139)
	pdf.SetLineWidth(exportLineWidth)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	for _, path := range paths {
		if len(path) == 1 {
			x, y := project(path[0])
			pdf.Circle(x, y, exportLineWidth/2, "F")
			continue
		}

		x, y := project(path[0])
		pdf.MoveTo(x, y)
		for _, p := range path[1:] {
			x, y = project(p)
			pdf.LineTo(x, y)
		}
		pdf.DrawPath("D")
	}

	return pdf.Output(w)
}

func serveExport(cfg *Config, hub *board.Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		paths := hub.Snapshot()

		var buf bytes.Buffer
		if err := renderPDF(&buf, paths); err != nil {
			errs <- err

			http.Error(w, "export failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="constellation.pdf"`)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		securityHeaders(cfg, w)

		written, err := buf.WriteTo(w)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Export of %d strokes (%s) to %s in %s",
			len(paths),
			humanReadableSize(written),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
