package detection

import (
	"sort"

	"github.com/repolens/core/pkg/analysis/catalog"
	"github.com/repolens/core/pkg/domain"
)

// Normalization constants for the achievable ceiling. Both are tuned values;
// do not adjust them without recalibrating thresholds across the catalog.
const (
	ceilingFactor = 0.6
	ceilingFloor  = 10.0
)

// evidence accumulates matches for one framework during a single scoring
// pass. It is discarded once the detection slice is built.
type evidence struct {
	score    float64
	files    map[string]struct{}
	patterns map[string]struct{}
}

func (e *evidence) add(file, patternID string, weight float64) {
	e.score += weight
	e.files[file] = struct{}{}
	e.patterns[patternID] = struct{}{}
}

// Scorer detects frameworks by summing weighted pattern matches per
// framework across the whole corpus.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a scorer over the given catalog.
func NewScorer(cat *catalog.Catalog) *Scorer {
	return &Scorer{catalog: cat}
}

// DetectFrameworks scans every non-error file against every signature and
// returns the frameworks whose normalized confidence clears the signature's
// threshold, sorted descending by confidence.
func (s *Scorer) DetectFrameworks(files map[string]domain.FileFact) []domain.FrameworkDetection {
	langs := corpusLanguages(files)

	var detections []domain.FrameworkDetection
	for _, sig := range s.catalog.Signatures() {
		ev := s.score(sig, files)
		if ev.score == 0 {
			// Frameworks with no matches never appear, regardless of how
			// small their ceiling would be.
			continue
		}

		ceiling := achievableCeiling(sig, langs, len(files) > 0)
		confidence := ev.score / ceiling
		if confidence > 1.0 {
			confidence = 1.0
		}
		if confidence < sig.MinConfidence {
			continue
		}

		detections = append(detections, domain.FrameworkDetection{
			Name:       sig.Name,
			Confidence: confidence,
			Files:      sortedKeys(ev.files),
			Patterns:   sortedKeys(ev.patterns),
		})
	}

	sort.SliceStable(detections, func(i, j int) bool {
		if detections[i].Confidence != detections[j].Confidence {
			return detections[i].Confidence > detections[j].Confidence
		}
		return detections[i].Name < detections[j].Name
	})

	return detections
}

func (s *Scorer) score(sig catalog.Signature, files map[string]domain.FileFact) *evidence {
	ev := &evidence{
		files:    make(map[string]struct{}),
		patterns: make(map[string]struct{}),
	}

	for path, fact := range files {
		if fact.Error != "" {
			continue
		}
		for i := range sig.Patterns {
			p := &sig.Patterns[i]
			if !p.AppliesTo(fact.Language) {
				continue
			}
			if Match(p, path, &fact) {
				ev.add(path, p.ID, p.Weight)
			}
		}
	}

	return ev
}

// achievableCeiling sums the weights of the patterns that could have matched
// given the languages present in the corpus, then applies the tuning factor
// and floor.
func achievableCeiling(sig catalog.Signature, corpusLangs map[domain.Language]struct{}, nonEmpty bool) float64 {
	var sum float64
	for _, p := range sig.Patterns {
		if len(p.Languages) == 0 {
			if nonEmpty {
				sum += p.Weight
			}
			continue
		}
		for _, l := range p.Languages {
			if _, ok := corpusLangs[l]; ok {
				sum += p.Weight
				break
			}
		}
	}

	ceiling := ceilingFactor * sum
	if ceiling < ceilingFloor {
		ceiling = ceilingFloor
	}
	return ceiling
}

func corpusLanguages(files map[string]domain.FileFact) map[domain.Language]struct{} {
	langs := make(map[domain.Language]struct{})
	for _, fact := range files {
		if fact.Error != "" {
			continue
		}
		langs[fact.Language] = struct{}{}
	}
	return langs
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
