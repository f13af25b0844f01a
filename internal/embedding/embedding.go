// Package embedding converts free text into fixed-length dense vectors and
// scores their similarity. The vectorizer is a deterministic TF-weighted
// hashing scheme, not a learned model: it needs no network access and always
// produces a valid, L2-normalized, non-zero vector for any input.
package embedding

import (
	"math"
	"regexp"
	"strings"
)

// Dim is the dimensionality of every generated vector.
const Dim = 256

// categoryBase is the first dimension reserved for semantic category scores.
const categoryBase = 200

// Vector is a Dim-length, L2-normalized embedding. Vectors are ephemeral:
// they are recomputed per comparison and never persisted.
type Vector []float64

var tokenRe = regexp.MustCompile(`[a-z0-9]{2,}`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {},
}

// importantTerms get a 2x weight boost: technical vocabulary plus the
// generic professional vocabulary that job descriptions lean on.
var importantTerms = map[string]struct{}{
	"javascript": {}, "python": {}, "java": {}, "react": {}, "node": {},
	"aws": {}, "docker": {}, "kubernetes": {}, "typescript": {},
	"angular": {}, "vue": {}, "sql": {}, "mongodb": {}, "developer": {},
	"engineer": {}, "architect": {}, "manager": {}, "senior": {},
	"lead": {}, "agile": {}, "scrum": {}, "devops": {}, "cicd": {},
	"api": {}, "rest": {}, "graphql": {}, "machine": {}, "learning": {},
	"tensorflow": {}, "pytorch": {}, "data": {}, "science": {},
	"cloud": {}, "azure": {}, "gcp": {}, "microservices": {},
	"testing": {}, "security": {},
	"experience": {}, "professional": {}, "support": {},
	"development": {}, "training": {}, "program": {}, "policies": {},
	"benefits": {}, "competitive": {}, "comprehensive": {},
	"flexible": {}, "opportunities": {}, "career": {}, "growth": {},
	"analytical": {}, "results": {},
}

// semanticCategories map to the reserved dimensions starting at
// categoryBase, in this fixed order.
var semanticCategories = []struct {
	name     string
	keywords []string
}{
	{"programming", []string{"code", "program", "develop", "software", "algorithm"}},
	{"leadership", []string{"lead", "manage", "direct", "coordinate", "supervise"}},
	{"cloud", []string{"cloud", "aws", "azure", "gcp", "serverless"}},
	{"frontend", []string{"react", "angular", "vue", "html", "css", "ui", "ux"}},
	{"backend", []string{"api", "server", "database", "node", "django", "spring"}},
	{"data", []string{"data", "analytics", "sql", "machine", "learning", "ai"}},
}

// Generate builds the embedding for text. It is a total function: the result
// always has length Dim, unit magnitude (within float tolerance), no NaN or
// Inf entries, and is never all-zero. Equal inputs produce equal vectors.
func Generate(text string) Vector {
	lower := strings.ToLower(text)

	tokens := tokenize(lower)
	if len(tokens) == 0 {
		return degenerateVector(len(text))
	}

	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	total := float64(len(tokens))
	for tok := range tf {
		tf[tok] /= total
	}

	vec := make(Vector, Dim)

	// Each token lands on three positions with decaying weight, so hash
	// collisions degrade the signal instead of destroying it.
	for tok, score := range tf {
		h := hashTerm(tok)
		boost := 1.0
		if _, ok := importantTerms[tok]; ok {
			boost = 2.0
		}
		w := score * boost
		vec[h%Dim] += w
		vec[(h*31)%Dim] += w * 0.5
		vec[(h*37)%Dim] += w * 0.3
	}

	// Consecutive-token bigrams add a light context signal.
	bigrams := make([]string, 0, len(tokens))
	for i := 0; i+1 < len(tokens); i++ {
		bigrams = append(bigrams, tokens[i]+"_"+tokens[i+1])
	}
	capped := bigrams
	if len(capped) > 50 {
		capped = capped[:50]
	}
	for _, bg := range capped {
		vec[hashTerm(bg)%Dim] += 0.5 / float64(len(bigrams))
	}

	// Semantic category scores occupy the reserved tail dimensions.
	for i, cat := range semanticCategories {
		matched := 0
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		if idx := categoryBase + i; idx < Dim {
			vec[idx] = float64(matched) / float64(len(cat.keywords))
		}
	}

	// Constant baseline keeps exact zeros from surviving normalization
	// edge cases.
	for i := range vec {
		vec[i] += 0.01
	}

	return normalize(vec)
}

// Cosine returns the similarity of two vectors in [0.1, 0.99]. Degenerate
// inputs (nil, empty, all-zero, zero magnitude, NaN result) yield the
// neutral default 0.3 instead of zero, so misbehaving embeddings never show
// up as "zero compatibility" downstream.
func Cosine(a, b Vector) float64 {
	const neutral = 0.3

	if len(a) == 0 || len(b) == 0 {
		return neutral
	}
	if allZero(a) || allZero(b) {
		return neutral
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return neutral
	}

	sim := dot / (magA * magB)
	if math.IsNaN(sim) {
		return neutral
	}

	// Heuristic embeddings never warrant reporting absolute 0% or 100%.
	return math.Max(0.1, math.Min(0.99, sim))
}

func tokenize(lower string) []string {
	raw := tokenRe.FindAllString(lower, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// degenerateVector synthesizes a deterministic low-magnitude vector for
// inputs with no usable tokens, seeded by the input length so repeated
// calls agree.
func degenerateVector(length int) Vector {
	vec := make(Vector, Dim)
	seed := length % Dim
	for i := 0; i < 50; i++ {
		vec[(seed+i*7)%Dim] = 0.1 + float64(i%10)/100
	}
	return normalize(vec)
}

func normalize(vec Vector) Vector {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	mag := math.Sqrt(sum)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		fallback := make(Vector, Dim)
		for i := range fallback {
			fallback[i] = 0.01
		}
		return fallback
	}
	out := make(Vector, len(vec))
	for i, v := range vec {
		out[i] = v / mag
	}
	return out
}

func allZero(vec Vector) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

// hashTerm folds a term into a non-negative 32-bit value. The exact scheme
// is an implementation detail; only determinism matters.
func hashTerm(s string) int {
	var h uint32
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return int(h & 0x7fffffff)
}
