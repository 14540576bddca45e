package entity

import "fmt"

// NumClasses is the size of the model's output layer.
const NumClasses = 7

// ActionClasses maps model output indices to labels. The order is fixed by
// the trained model and must never be reordered.
var ActionClasses = [NumClasses]string{
	"Walking",
	"Running",
	"Jumping",
	"Boxing",
	"Handclapping",
	"Handwaving",
	"Jogging",
}

// ActionLabel returns the label for a model output index.
func ActionLabel(index int) (string, error) {
	if index < 0 || index >= NumClasses {
		return "", fmt.Errorf("class index %d out of range [0,%d)", index, NumClasses)
	}
	return ActionClasses[index], nil
}

// Caption renders the fixed caption template for a label.
func Caption(label string) string {
	return "A person is " + label
}

// Argmax returns the index of the largest probability. Ties resolve to the
// lowest index, matching the behavior of the trained pipeline.
func Argmax(probabilities []float32) int {
	best := 0
	for i, p := range probabilities {
		if p > probabilities[best] {
			best = i
		}
	}
	return best
}
