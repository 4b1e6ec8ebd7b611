package services

import "math"

// Classifier is the external pre-trained model collaborator. It is loaded
// once at process start, never mutated, and safe for concurrent use.
type Classifier interface {
	Classify(features [4]float64) (int, string)
}

var irisLabels = map[int]string{
	0: "Iris-setosa",
	1: "Iris-versicolor",
	2: "Iris-virginica",
}

// IrisLabel maps a class id to its display name. Unknown ids get a sentinel
// instead of an error.
func IrisLabel(classID int) string {
	if label, ok := irisLabels[classID]; ok {
		return label
	}
	return "unknown"
}

// IrisClassifier is a nearest-centroid model over the iris training set
// means, standing in for the serialized model of the original deployment.
type IrisClassifier struct {
	centroids [3][4]float64
}

func NewIrisClassifier() *IrisClassifier {
	return &IrisClassifier{
		centroids: [3][4]float64{
			{5.006, 3.428, 1.462, 0.246}, // setosa
			{5.936, 2.770, 4.260, 1.326}, // versicolor
			{6.588, 2.974, 5.552, 2.026}, // virginica
		},
	}
}

func (c *IrisClassifier) Classify(features [4]float64) (int, string) {
	best := 0
	bestDist := math.MaxFloat64
	for i, centroid := range c.centroids {
		var d float64
		for j := range features {
			diff := features[j] - centroid[j]
			d += diff * diff
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, IrisLabel(best)
}
