package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIrisClassifier_Classify(t *testing.T) {
	c := NewIrisClassifier()

	tests := []struct {
		name      string
		features  [4]float64
		wantID    int
		wantLabel string
	}{
		{"setosa", [4]float64{5.1, 3.5, 1.4, 0.2}, 0, "Iris-setosa"},
		{"versicolor", [4]float64{6.0, 2.8, 4.3, 1.3}, 1, "Iris-versicolor"},
		{"virginica", [4]float64{6.6, 3.0, 5.6, 2.1}, 2, "Iris-virginica"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, label := c.Classify(tt.features)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestIrisClassifier_Deterministic(t *testing.T) {
	c := NewIrisClassifier()

	id1, label1 := c.Classify([4]float64{5.9, 3.0, 5.1, 1.8})
	id2, label2 := c.Classify([4]float64{5.9, 3.0, 5.1, 1.8})

	assert.Equal(t, id1, id2)
	assert.Equal(t, label1, label2)
}

func TestIrisLabel_UnknownSentinel(t *testing.T) {
	assert.Equal(t, "Iris-setosa", IrisLabel(0))
	assert.Equal(t, "unknown", IrisLabel(42))
	assert.Equal(t, "unknown", IrisLabel(-1))
}
