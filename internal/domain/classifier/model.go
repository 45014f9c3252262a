// Package classifier wraps the supervised symptom→diagnosis model. The
// model is a multinomial naive Bayes with Laplace smoothing over binarized
// symptom-presence vectors, trained once at startup from the embedded case
// table (or a CSV override) and immutable afterwards.
package classifier

import (
	"math"
	"sort"
)

// Case is one labeled training row: a symptom list and its diagnosis label.
type Case struct {
	Symptoms  []string
	Diagnosis string
}

// LabelProb is one class with its predicted probability.
type LabelProb struct {
	Label string
	Prob  float64
}

// Model holds the fitted per-class feature counts. Immutable after Train.
type Model struct {
	classes      []string
	classCases   map[string]int
	featureCount map[string]map[string]int
	featureTotal map[string]int
	vocab        map[string]struct{}
	totalCases   int
}

// Train fits the model on the labeled cases.
func Train(cases []Case) *Model {
	m := &Model{
		classCases:   make(map[string]int),
		featureCount: make(map[string]map[string]int),
		featureTotal: make(map[string]int),
		vocab:        make(map[string]struct{}),
	}
	for _, c := range cases {
		if c.Diagnosis == "" || len(c.Symptoms) == 0 {
			continue
		}
		if _, seen := m.featureCount[c.Diagnosis]; !seen {
			m.classes = append(m.classes, c.Diagnosis)
			m.featureCount[c.Diagnosis] = make(map[string]int)
		}
		m.classCases[c.Diagnosis]++
		m.totalCases++
		for _, s := range c.Symptoms {
			m.vocab[s] = struct{}{}
			m.featureCount[c.Diagnosis][s]++
			m.featureTotal[c.Diagnosis]++
		}
	}
	sort.Strings(m.classes)
	return m
}

// Vocabulary reports whether the symptom name is part of the model's
// feature vocabulary.
func (m *Model) Vocabulary(name string) bool {
	_, ok := m.vocab[name]
	return ok
}

// Classes returns the trained diagnosis labels.
func (m *Model) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// PredictProba returns the probability distribution over diagnosis labels
// for the given symptom features, sorted by descending probability.
// Features outside the vocabulary are ignored; they reach this layer only
// if the matcher and the training set disagree.
func (m *Model) PredictProba(features []string) []LabelProb {
	if m.totalCases == 0 {
		return nil
	}
	present := make([]string, 0, len(features))
	for _, f := range features {
		if _, ok := m.vocab[f]; ok {
			present = append(present, f)
		}
	}

	logProbs := make([]float64, len(m.classes))
	vocabSize := float64(len(m.vocab))
	for i, class := range m.classes {
		lp := math.Log(float64(m.classCases[class]) / float64(m.totalCases))
		denom := float64(m.featureTotal[class]) + vocabSize
		for _, f := range present {
			lp += math.Log((float64(m.featureCount[class][f]) + 1) / denom)
		}
		logProbs[i] = lp
	}

	// Softmax with max subtraction for numeric stability.
	maxLP := logProbs[0]
	for _, lp := range logProbs[1:] {
		if lp > maxLP {
			maxLP = lp
		}
	}
	total := 0.0
	probs := make([]float64, len(logProbs))
	for i, lp := range logProbs {
		probs[i] = math.Exp(lp - maxLP)
		total += probs[i]
	}

	out := make([]LabelProb, len(m.classes))
	for i, class := range m.classes {
		out[i] = LabelProb{Label: class, Prob: probs[i] / total}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prob != out[j].Prob {
			return out[i].Prob > out[j].Prob
		}
		return out[i].Label < out[j].Label
	})
	return out
}
