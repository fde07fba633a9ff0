package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"salc/internal/testkit"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 4 << 10
)

// addCorpusSeeds добавляет исходники всех кейсов testkit и пару ручных примеров.
func addCorpusSeeds(f *testing.F) {
	f.Helper()
	f.Add([]byte{})
	f.Add([]byte("вывод 1\n"))
	f.Add([]byte("алг f(арг цел a, рез цел r) нач r := a * 2 кон\nвывод f(2)\n"))

	matches, err := filepath.Glob(filepath.Join("..", "testkit", "testdata", "*.md"))
	if err != nil {
		return
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cases, err := testkit.ExtractCases(data)
		if err != nil {
			continue
		}
		for _, c := range cases {
			f.Add(clampSeed([]byte(c.Source)))
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
