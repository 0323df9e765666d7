package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  time.Now().Format(time.RFC3339),
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 4 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("array_field_%d", i)] = []int{i, i + 1, i + 2}
		}
	}
	return result
}

// benchmarkCommand writes data to a file and runs each command against it b.N times
func benchmarkCommand(b *testing.B, data interface{}, commands ...string) {
	b.Helper()
	jsonData, err := json.MarshalIndent(data, "", "  ")
	require.NoError(b, err)

	jsonFile := filepath.Join(b.TempDir(), "bench.json")
	require.NoError(b, os.WriteFile(jsonFile, jsonData, 0644))

	for _, command := range commands {
		b.Run(command, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				// validate exits 1 for documents over the limits; only a crash fails
				code, _, stderr := jsonlens(b, "", "-i", jsonFile, command)
				require.Contains(b, []int{0, 1}, code, stderr)
			}
		})
	}
}

// BenchmarkDeepNesting benchmarks performance with deeply nested structures
func BenchmarkDeepNesting(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth8Width2", 8, 2},
	}

	for _, d := range depths {
		b.Run(d.name, func(b *testing.B) {
			benchmarkCommand(b, generateNestedJSON(d.depth, d.width), "validate", "analyze", "schema")
		})
	}
}

// BenchmarkWideStructures benchmarks performance with wide structures
func BenchmarkWideStructures(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	for _, fieldCount := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Fields%d", fieldCount), func(b *testing.B) {
			benchmarkCommand(b, generateWideJSON(fieldCount), "validate", "analyze", "minify")
		})
	}
}

// BenchmarkArrayProcessing benchmarks performance with large arrays
func BenchmarkArrayProcessing(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("Items%d", size), func(b *testing.B) {
			items := make([]map[string]interface{}, size)
			for i := range items {
				items[i] = map[string]interface{}{
					"id":     i,
					"name":   fmt.Sprintf("item_%d", i),
					"active": i%3 == 0,
					"tags":   []string{"a", "b"},
				}
			}
			benchmarkCommand(b, map[string]interface{}{"items": items}, "validate", "analyze", "format")
		})
	}
}
