package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadFloatRows reads a whitespace separated numeric table. Every row must have
// the same number of columns; if columns > 0 that count is enforced as well.
// Lines starting with '#' are comments.
func ReadFloatRows(filename string, columns int) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var result [][]float64

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Fields(line)

		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		if columns <= 0 {
			columns = len(parts)
		}
		if len(parts) != columns {
			return nil, fmt.Errorf("invalid format in line: %q - expected %d numbers, got %d", line, columns, len(parts))
		}

		row := make([]float64, columns)
		for i := range parts {
			row[i], err = strconv.ParseFloat(parts[i], 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing float in line %q: %w", line, err)
			}
		}
		result = append(result, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return result, nil
}

func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CreateOutput creates <outputDir>/<stem>_<suffix>.csv, making the directory if needed.
func CreateOutput(outputDir, stem, suffix string) (*os.File, error) {
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return nil, err
		}
	}
	return os.Create(filepath.Join(outputDir, stem+"_"+suffix+".csv"))
}
