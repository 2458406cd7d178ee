package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kozaktomas/diacritics"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// category is one rule group of the fallback analyzer. Keywords are
// matched diacritics-folded and lowercased, so "sandália" and "sandalia"
// both hit. Price thresholds select the score tier within the category.
type category struct {
	name      string
	keywords  []string
	lowPrice  float64
	highPrice float64
	baseScore float64

	audience  string
	strengths string
	advice    string
}

// scan order matters: the first group with a keyword hit wins
var categories = []category{
	{
		name:      "lingerie",
		keywords:  []string{"babydoll", "camisola", "lingerie", "sutia", "calcinha", "renda", "corselet", "bodysuit"},
		lowPrice:  60,
		highPrice: 150,
		baseScore: 7.6,
		audience:  "Mulheres de 18 a 45 anos que valorizam conforto e sensualidade no dia a dia.",
		strengths: "Modelagem delicada, tecidos leves e acabamento em renda valorizam a peça.",
		advice:    "Inclua fotos de detalhe do tecido e uma tabela de medidas precisa na descrição.",
	},
	{
		name:      "calçados",
		keywords:  []string{"sapato", "tenis", "sandalia", "bota", "chinelo", "sapatilha", "scarpin", "rasteirinha"},
		lowPrice:  80,
		highPrice: 300,
		baseScore: 7.2,
		audience:  "Consumidores que buscam calçados versáteis para uso diário e ocasiões especiais.",
		strengths: "Design atual e construção voltada ao conforto prolongado.",
		advice:    "Detalhe o material do solado e do cabedal e informe a numeração disponível.",
	},
	{
		name:      "camisetas",
		keywords:  []string{"camiseta", "camisa", "blusa", "regata", "moletom", "cropped", "tricot"},
		lowPrice:  40,
		highPrice: 120,
		baseScore: 7.0,
		audience:  "Público jovem e adulto em busca de peças casuais para compor looks do dia a dia.",
		strengths: "Peça coringa de fácil combinação, com boa rotatividade de estoque.",
		advice:    "Especifique a composição do tecido e o caimento (slim, regular ou oversized).",
	},
	{
		name:      "vestidos",
		keywords:  []string{"vestido", "saia", "macacao"},
		lowPrice:  70,
		highPrice: 250,
		baseScore: 7.4,
		audience:  "Mulheres que procuram peças femininas para trabalho, passeio e eventos.",
		strengths: "Peça de destaque no guarda-roupa, com forte apelo visual nas fotos.",
		advice:    "Mostre a peça em corpo inteiro e descreva comprimento e tipo de caimento.",
	},
	{
		name:      "acessórios",
		keywords:  []string{"bolsa", "cinto", "colar", "brinco", "oculos", "lenco", "necessaire"},
		lowPrice:  30,
		highPrice: 180,
		baseScore: 6.9,
		audience:  "Compradores em busca de complementos para renovar o visual sem trocar o guarda-roupa.",
		strengths: "Ticket acessível e alto potencial de compra por impulso.",
		advice:    "Informe dimensões e materiais; acessórios vendem pelo detalhe.",
	},
}

// genericCategory is the catch-all when no keyword group matches
var genericCategory = category{
	name:      "produto",
	lowPrice:  50,
	highPrice: 200,
	baseScore: 6.8,
	audience:  "Consumidores em geral interessados na categoria do produto.",
	strengths: "Produto com proposta clara e potencial de boa aceitação.",
	advice:    "Enriqueça a descrição com materiais, medidas e diferenciais do produto.",
}

// Synthesize produces a deterministic rule-based analysis for one
// product. It never fails: unparsable prices degrade to zero and
// unclassified titles fall into the generic category.
func Synthesize(product catalog.Product) string {
	cat := classifyTitle(product.Title)
	price := parsePrice(product.Price)
	score := cat.score(price)

	caser := cases.Title(language.BrazilianPortuguese)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Análise do Produto: %s\n", product.Title))
	b.WriteString(fmt.Sprintf("Categoria identificada: %s\n\n", caser.String(cat.name)))

	b.WriteString("1. Análise de Preço\n")
	b.WriteString(cat.priceAnalysis(price))
	b.WriteString("\n\n")

	b.WriteString("2. Qualidade Percebida\n")
	b.WriteString(cat.perceivedQuality(price))
	b.WriteString("\n\n")

	b.WriteString("3. Público-Alvo\n")
	b.WriteString(cat.audience)
	b.WriteString("\n\n")

	b.WriteString("4. Pontos Fortes\n")
	b.WriteString(cat.strengths)
	b.WriteString("\n\n")

	b.WriteString("5. Oportunidades de Melhoria\n")
	b.WriteString(cat.advice)
	b.WriteString("\n\n")

	b.WriteString("6. Estratégia Recomendada\n")
	b.WriteString(cat.strategy(product))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("7. Score Final: %s/10", formatScore(score)))

	return b.String()
}

func classifyTitle(title string) category {
	folded := normalizeText(title)
	for _, cat := range categories {
		for _, keyword := range cat.keywords {
			if strings.Contains(folded, keyword) {
				return cat
			}
		}
	}

	return genericCategory
}

// normalizeText removes diacritics and lowercases for keyword comparison
func normalizeText(s string) string {
	normalized, err := diacritics.Remove(s)
	if err != nil {
		// fallback to the original string if diacritics removal fails
		normalized = s
	}
	return strings.ToLower(normalized)
}

// parsePrice recovers a numeric value from the formatted display price.
// Ranges use the lower bound. Anything unparsable yields 0.
func parsePrice(formatted string) float64 {
	if i := strings.Index(formatted, " - "); i >= 0 {
		formatted = formatted[:i]
	}

	stripped := utils.StripPrice(formatted)
	if strings.Contains(stripped, ",") {
		// "1.250,00" - dots are thousands separators, comma is decimal
		stripped = strings.ReplaceAll(stripped, ".", "")
		stripped = strings.Replace(stripped, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0
	}

	return value
}

func (c category) score(price float64) float64 {
	switch {
	case price > 0 && price < c.lowPrice:
		// cheap within the category reads as good value
		return c.baseScore + 0.7
	case price > c.highPrice:
		return c.baseScore - 0.5
	default:
		return c.baseScore
	}
}

func (c category) priceAnalysis(price float64) string {
	switch {
	case price == 0:
		return "Preço não informado. Exibir o preço aumenta a confiança e a conversão."
	case price < c.lowPrice:
		return fmt.Sprintf("Preço abaixo da média da categoria %s, muito competitivo e com forte apelo de compra.", c.name)
	case price > c.highPrice:
		return fmt.Sprintf("Preço acima da média da categoria %s. O posicionamento premium exige justificativa clara de valor.", c.name)
	default:
		return fmt.Sprintf("Preço alinhado à média da categoria %s, posicionamento equilibrado.", c.name)
	}
}

func (c category) perceivedQuality(price float64) string {
	if price > c.highPrice {
		return "A faixa de preço transmite percepção de produto premium; fotos e descrição precisam sustentar essa expectativa."
	}

	return "Percepção de qualidade compatível com a faixa de preço praticada na categoria."
}

func (c category) strategy(product catalog.Product) string {
	if product.Available {
		return "Produto disponível: destaque prazo de entrega e condições de frete para acelerar a decisão de compra."
	}

	return "Produto indisponível: ative aviso de reposição para não perder a demanda acumulada."
}

// formatScore renders one decimal place with a comma separator
func formatScore(score float64) string {
	return strings.Replace(strconv.FormatFloat(score, 'f', 1, 64), ".", ",", 1)
}
