package cli

import (
	"errors"
	"strings"

	"github.com/tubefetch/tubefetch/internal/faults"
	"github.com/tubefetch/tubefetch/internal/format"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/platform"
)

func (c *console) renderMetadata(meta *model.VideoMetadata) {
	c.println()
	c.printf("Title:    %s\n", meta.Title)
	c.printf("Uploader: %s\n", meta.Uploader)
	c.printf("Duration: %s\n", meta.FormatDuration())
	if meta.ViewCount > 0 {
		c.printf("Views:    %s\n", model.FormatCount(meta.ViewCount))
	}
	if date := meta.FormatUploadDate(); date != "" {
		c.printf("Uploaded: %s\n", date)
	}
	if meta.Description != "" {
		c.println()
		c.println(meta.Description)
	}
}

func (c *console) renderFormats(classified format.Classified) {
	display := classified.ForDisplay()

	if len(display.Combined) > 0 {
		c.println("\nVideo + audio:")
		for _, f := range display.Combined {
			c.printf("  %-10s %-5s %4dp %s\n", f.FormatID, f.Ext, f.Height, model.FormatFilesize(f.Filesize))
		}
	}
	if len(display.VideoOnly) > 0 {
		c.println("\nVideo only:")
		for _, f := range display.VideoOnly {
			c.printf("  %-10s %-5s %4dp %s\n", f.FormatID, f.Ext, f.Height, model.FormatFilesize(f.Filesize))
		}
	}
	if len(display.AudioOnly) > 0 {
		c.println("\nAudio only:")
		for _, f := range display.AudioOnly {
			c.printf("  %-10s %-5s %3.0fkbps %s\n", f.FormatID, f.Ext, f.ABR, model.FormatFilesize(f.Filesize))
		}
	}
	c.println()
}

func (c *console) renderFault(err error) {
	var fault *faults.Fault
	if !errors.As(err, &fault) {
		c.printf("Error: %v\n", err)
		return
	}

	c.printf("\n%s\n", fault.Category.Title())
	if fault.Raw != "" {
		c.printf("  %s\n", fault.Raw)
	}
	if suggestions := fault.Category.Suggestions(); len(suggestions) > 0 {
		c.println("\nSuggestions:")
		for _, s := range suggestions {
			c.printf("  - %s\n", s)
		}
	}
}

func (c *console) renderFiles(files []platform.DownloadedFile) {
	if len(files) == 0 {
		c.println("No downloads yet.")
		return
	}
	for _, f := range files {
		c.printf("  %-50s %10s  %s\n", f.Name, model.FormatFilesize(f.Size), f.ModTime.Format("15:04:05"))
	}
	c.printf("Total: %d file(s), %s\n", len(files), model.FormatFilesize(platform.TotalSize(files)))
}

func (c *console) renderProgress(state model.DownloadState) {
	line := state.ProgressLine()
	// Pad to overwrite remnants of a longer previous line.
	if n := 78 - len(line); n > 0 {
		line += strings.Repeat(" ", n)
	}
	c.printf("\r%s", line)
}
