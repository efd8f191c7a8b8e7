// Package similarity 以 TF-IDF 與餘弦相似度比對食材字串。
//
// 權重計算與 scikit-learn TfidfVectorizer 的預設行為一致：
//   - 轉小寫，取連續兩個以上的文字字元作為詞
//   - TF 為原始次數
//   - IDF = ln((1+n)/(1+df)) + 1
//   - 向量做 L2 正規化
//
// 詞彙表只在 Fit 時建立，查詢中不在詞彙表的詞不計分。
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"recipe-finder/internal/core/catalog"
)

// vector 稀疏向量，key 為詞彙索引
type vector map[int]float64

// Model 已擬合的 TF-IDF 模型，建立後不可變
type Model struct {
	vocab   map[string]int
	idf     []float64
	docVecs map[string]vector
}

// Scored 帶相似度的食譜
type Scored struct {
	Recipe     catalog.Recipe
	Similarity float64
}

// Fit 以所有文件建立詞彙表與 IDF
func Fit(docs []string) *Model {
	m := &Model{
		vocab:   make(map[string]int),
		docVecs: make(map[string]vector, len(docs)),
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	// 詞彙索引依字母排序，確保結果可重現
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m.idf = make([]float64, len(terms))
	for i, term := range terms {
		m.vocab[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for _, doc := range docs {
		if _, ok := m.docVecs[doc]; !ok {
			m.docVecs[doc] = m.transform(doc)
		}
	}

	return m
}

// FitCatalog 以目錄中所有食材字串擬合模型
func FitCatalog(c *catalog.Catalog) *Model {
	return Fit(c.IngredientTexts())
}

// VocabularySize 詞彙表大小
func (m *Model) VocabularySize() int {
	return len(m.vocab)
}

// Similarity 計算兩段文字的餘弦相似度
func (m *Model) Similarity(a, b string) float64 {
	return cosine(m.vector(a), m.vector(b))
}

// Score 計算查詢與每個候選食譜的相似度，依相似度遞減排序，同分保留原順序
func (m *Model) Score(query string, candidates []catalog.Recipe) []Scored {
	q := m.transform(query)

	scored := make([]Scored, len(candidates))
	for i, r := range candidates {
		scored[i] = Scored{
			Recipe:     r,
			Similarity: cosine(q, m.vector(r.IngredientText)),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	return scored
}

// Top 取前 n 筆
func Top(scored []Scored, n int) []Scored {
	if n < 0 {
		n = 0
	}
	if len(scored) <= n {
		return scored
	}
	return scored[:n]
}

func (m *Model) vector(text string) vector {
	if v, ok := m.docVecs[text]; ok {
		return v
	}
	return m.transform(text)
}

// transform 將文字轉為 L2 正規化的 TF-IDF 向量
func (m *Model) transform(text string) vector {
	v := make(vector)
	for _, tok := range tokenize(text) {
		if idx, ok := m.vocab[tok]; ok {
			v[idx]++
		}
	}

	var norm float64
	for idx, tf := range v {
		w := tf * m.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for idx := range v {
		v[idx] /= norm
	}
	return v
}

// cosine 兩個已正規化向量的餘弦相似度，零向量為 0
func cosine(a, b vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for idx, x := range a {
		dot += x * b[idx]
	}

	// 浮點誤差
	switch {
	case dot < 0:
		return 0
	case dot > 1:
		return 1
	}
	return dot
}

// tokenize 轉小寫後切出兩個字元以上的詞
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
