package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/fitroom/pkg/models"
)

func runInfo(w io.Writer, modelPath string) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	format, err := models.DetectFormat(modelPath)
	if err != nil {
		return err
	}

	root, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	stats := models.Inspect(root)
	size := stats.Size()
	center := stats.Center()

	fmt.Fprintf(w, "File:       %s\n", filepath.Base(modelPath))
	fmt.Fprintf(w, "Format:     %s\n", strings.ToUpper(format.String()))
	fmt.Fprintf(w, "Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Meshes:     %d\n", stats.Meshes)
	fmt.Fprintf(w, "Vertices:   %d\n", stats.Vertices)
	fmt.Fprintf(w, "Triangles:  %d\n", stats.Triangles)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bounds:     (%.3f, %.3f, %.3f) to (%.3f, %.3f, %.3f)\n",
		stats.Min[0], stats.Min[1], stats.Min[2], stats.Max[0], stats.Max[1], stats.Max[2])
	fmt.Fprintf(w, "Dimensions: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	fmt.Fprintf(w, "Center:     (%.3f, %.3f, %.3f)\n", center[0], center[1], center[2])
	return nil
}
