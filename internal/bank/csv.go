package bank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column headers expected in the question CSV.
var requiredColumns = []string{
	"Subject", "Cluster", "Question",
	"Option A", "Option B", "Option C", "Option D",
	"Correct Answer",
}

var optionKeys = []string{"A", "B", "C", "D"}

// Load reads the question CSV at path and builds a Bank.
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return b, nil
}

// Parse reads question rows from r. The first record is the header;
// column order is taken from it so extra columns are tolerated.
func Parse(r io.Reader) (*Bank, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var questions []Question
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		cluster, err := strconv.Atoi(strings.TrimSpace(rec[col["Cluster"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad cluster %q", line, rec[col["Cluster"]])
		}

		q := Question{
			Subject: strings.TrimSpace(rec[col["Subject"]]),
			Cluster: cluster,
			Prompt:  strings.TrimSpace(rec[col["Question"]]),
			Answer:  strings.ToUpper(strings.TrimSpace(rec[col["Correct Answer"]])),
		}
		for _, key := range optionKeys {
			q.Options = append(q.Options, Option{
				Key:  key,
				Text: strings.TrimSpace(rec[col["Option "+key]]),
			})
		}

		if q.Subject == "" || q.Prompt == "" {
			return nil, fmt.Errorf("line %d: empty subject or question", line)
		}
		if !validKey(q.Answer) {
			return nil, fmt.Errorf("line %d: correct answer %q is not one of A-D", line, q.Answer)
		}

		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found")
	}
	return New(questions), nil
}

func validKey(key string) bool {
	for _, k := range optionKeys {
		if key == k {
			return true
		}
	}
	return false
}
