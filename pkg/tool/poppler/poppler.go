/*
Copyright 2024 The GeoSys Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package poppler shells out to the poppler-utils binaries (pdftoppm,
// pdfinfo) that the runtime image installs.
package poppler

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PageCount parses the "Pages:" line of pdfinfo output.
func PageCount(ctx context.Context, pdfPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, errors.Wrap(err, "pdfinfo failed")
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			if total, convErr := strconv.Atoi(fields[1]); convErr == nil {
				return total, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, errors.New("failed to determine page count from pdfinfo output")
}

// RenderPage rasterizes a single page of pdfPath to a JPEG in workDir and
// returns the rendered file path.
func RenderPage(ctx context.Context, pdfPath, workDir string, page, dpi int) (string, error) {
	prefix := filepath.Join(workDir, "page")
	args := []string{
		"-jpeg",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		pdfPath,
		prefix,
	}
	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "pdftoppm failed on page %d: %s", page, stderr.String())
	}

	return findRenderedImage(prefix, page)
}

// RenderFirstPage rasterizes page 1 of pdfPath.
func RenderFirstPage(ctx context.Context, pdfPath, workDir string, dpi int) (string, error) {
	return RenderPage(ctx, pdfPath, workDir, 1, dpi)
}

// pdftoppm zero-pads the page suffix depending on the total page count, so
// the output name is not known up front.
func findRenderedImage(prefix string, page int) (string, error) {
	candidates := []string{
		fmt.Sprintf("%s-%d.jpg", prefix, page),
		fmt.Sprintf("%s-%02d.jpg", prefix, page),
		fmt.Sprintf("%s-%03d.jpg", prefix, page),
		fmt.Sprintf("%s-%04d.jpg", prefix, page),
		fmt.Sprintf("%s-%05d.jpg", prefix, page),
		fmt.Sprintf("%s-%06d.jpg", prefix, page),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	matches, err := filepath.Glob(fmt.Sprintf("%s-*.jpg", prefix))
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		if pageIndexFromName(match) == page {
			return match, nil
		}
	}

	return "", errors.Errorf("rendered image not found for page %d", page)
}

func pageIndexFromName(path string) int {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	number := strings.TrimSuffix(base[idx+1:], ".jpg")
	v, err := strconv.Atoi(number)
	if err != nil {
		return 0
	}

	return v
}
