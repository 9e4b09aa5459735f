package bank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Subject,Cluster,Question,Option A,Option B,Option C,Option D,Correct Answer
Mathematics,4,What is 6 x 7?,40,42,44,48,B
Mathematics,5,What is 1/2 + 1/4?,1/4,2/6,3/4,1/8,C
English,2,Pick the correct sentence.,He go home,He goes home,He going home,He gone home,b
`

func TestParse(t *testing.T) {
	b, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	assert.Equal(t, []string{"English", "Mathematics"}, b.Subjects())
	assert.True(t, b.HasSubject("Mathematics"))
	assert.False(t, b.HasSubject("Science"))

	math := b.QuestionsFor("Mathematics")
	require.Len(t, math, 2)
	assert.Equal(t, 0, math[0].ID)
	assert.Equal(t, 4, math[0].Cluster)
	assert.Len(t, math[0].Options, 4)
	assert.Equal(t, "B", math[0].Answer)

	// Correct-answer keys are normalized to upper case.
	english := b.QuestionsFor("English")
	require.Len(t, english, 1)
	assert.Equal(t, "B", english[0].Answer)

	c5 := b.QuestionsForCluster("Mathematics", 5)
	require.Len(t, c5, 1)
	assert.Equal(t, "What is 1/2 + 1/4?", c5[0].Prompt)
	assert.Empty(t, b.QuestionsForCluster("Mathematics", 7))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing column",
			csv:  "Subject,Cluster,Question,Option A,Option B,Option C,Correct Answer\n",
		},
		{
			name: "bad cluster",
			csv: "Subject,Cluster,Question,Option A,Option B,Option C,Option D,Correct Answer\n" +
				"Mathematics,low,Q?,1,2,3,4,A\n",
		},
		{
			name: "bad answer key",
			csv: "Subject,Cluster,Question,Option A,Option B,Option C,Option D,Correct Answer\n" +
				"Mathematics,3,Q?,1,2,3,4,E\n",
		},
		{
			name: "no rows",
			csv:  "Subject,Cluster,Question,Option A,Option B,Option C,Option D,Correct Answer\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func TestParse_ExtraColumnsTolerated(t *testing.T) {
	csv := "ID,Subject,Cluster,Question,Option A,Option B,Option C,Option D,Correct Answer,Notes\n" +
		"7,English,3,Choose the noun.,run,book,fast,slowly,B,reviewed\n"
	b, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}
