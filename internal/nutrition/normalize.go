package nutrition

import "github.com/hitoshi/nutribud/internal/model"

// fieldMapping はプロバイダのフィールド名1つを正規化レコードの項目へ対応付ける。
// マッピングは推論ではなく列挙データとして保持し、単体で検証可能にする。
type fieldMapping struct {
	label  string
	assign func(r *model.NutrientRecord, v float64)
}

// textSearchMappings はテキスト検索プロバイダの英語ラベルの対応表。
// Sodium, Na はmg単位で届くため、salt(g)はsodium/1000で近似する。
var textSearchMappings = []fieldMapping{
	{"Energy", func(r *model.NutrientRecord, v float64) { r.Calories = &v }},
	{"Protein", func(r *model.NutrientRecord, v float64) { r.Protein = &v }},
	{"Carbohydrate, by difference", func(r *model.NutrientRecord, v float64) { r.Carbs = &v }},
	{"Total lipid (fat)", func(r *model.NutrientRecord, v float64) { r.Fats = &v }},
	{"Sugars, total including NLEA", func(r *model.NutrientRecord, v float64) { r.Sugar = &v }},
	{"Sodium, Na", func(r *model.NutrientRecord, v float64) {
		r.SodiumMg = &v
		salt := v / 1000
		r.Salt = &salt
	}},
	{"Fiber, total dietary", func(r *model.NutrientRecord, v float64) { r.Fiber = &v }},
	{"Fatty acids, total saturated", func(r *model.NutrientRecord, v float64) { r.SaturatedFat = &v }},
	{"Fatty acids, total trans", func(r *model.NutrientRecord, v float64) { r.TransFat = &v }},
	{"Cholesterol", func(r *model.NutrientRecord, v float64) { r.Cholesterol = &v }},
	{"Calcium, Ca", func(r *model.NutrientRecord, v float64) { r.CalciumMg = &v }},
	{"Iron, Fe", func(r *model.NutrientRecord, v float64) { r.IronMg = &v }},
	{"Magnesium, Mg", func(r *model.NutrientRecord, v float64) { r.MagnesiumMg = &v }},
	{"Phosphorus, P", func(r *model.NutrientRecord, v float64) { r.PhosphorusMg = &v }},
	{"Potassium, K", func(r *model.NutrientRecord, v float64) { r.PotassiumMg = &v }},
	{"Zinc, Zn", func(r *model.NutrientRecord, v float64) { r.ZincMg = &v }},
	{"Vitamin A, RAE", func(r *model.NutrientRecord, v float64) { r.VitaminA = &v }},
	{"Vitamin B-6", func(r *model.NutrientRecord, v float64) { r.VitaminB6 = &v }},
	{"Vitamin B-12", func(r *model.NutrientRecord, v float64) { r.VitaminB12 = &v }},
	{"Vitamin C, total ascorbic acid", func(r *model.NutrientRecord, v float64) { r.VitaminC = &v }},
	{"Vitamin D (D2 + D3)", func(r *model.NutrientRecord, v float64) { r.VitaminD = &v }},
	{"Vitamin E (alpha-tocopherol)", func(r *model.NutrientRecord, v float64) { r.VitaminE = &v }},
	{"Vitamin K (phylloquinone)", func(r *model.NutrientRecord, v float64) { r.VitaminK = &v }},
	{"Thiamin", func(r *model.NutrientRecord, v float64) { r.Thiamin = &v }},
	{"Riboflavin", func(r *model.NutrientRecord, v float64) { r.Riboflavin = &v }},
	{"Niacin", func(r *model.NutrientRecord, v float64) { r.Niacin = &v }},
	{"Folate, total", func(r *model.NutrientRecord, v float64) { r.Folate = &v }},
	{"Water", func(r *model.NutrientRecord, v float64) { r.Water = &v }},
}

// barcodeMappings はバーコードプロバイダの "_100g" フィールド名の対応表。
// エネルギーは energy-kcal_100g を優先し、欠損時のみ energy_100g へフォールバック
// する（Normalize内で個別処理）。
var barcodeMappings = []fieldMapping{
	{"proteins_100g", func(r *model.NutrientRecord, v float64) { r.Protein = &v }},
	{"carbohydrates_100g", func(r *model.NutrientRecord, v float64) { r.Carbs = &v }},
	{"fat_100g", func(r *model.NutrientRecord, v float64) { r.Fats = &v }},
	{"sugars_100g", func(r *model.NutrientRecord, v float64) { r.Sugar = &v }},
	{"salt_100g", func(r *model.NutrientRecord, v float64) { r.Salt = &v }},
	{"fiber_100g", func(r *model.NutrientRecord, v float64) { r.Fiber = &v }},
	{"saturated-fat_100g", func(r *model.NutrientRecord, v float64) { r.SaturatedFat = &v }},
	{"nova-group", func(r *model.NutrientRecord, v float64) { r.NovaGroup = &v }},
}

// Normalize はタグ付けされた生ペイロードを正規化栄養レコードへ変換する。
// ソースに存在しないフィールドは0ではなく欠損（nil）のまま伝搬する。
// 下流は欠損を「不明」として扱い、決して「ゼロ」と解釈してはならない。
func Normalize(raw RawItem) model.NutrientRecord {
	record := model.NutrientRecord{Name: raw.Name}

	var mappings []fieldMapping
	switch raw.Provenance {
	case ProvenanceTextSearch:
		mappings = textSearchMappings
	case ProvenanceBarcode:
		mappings = barcodeMappings

		// energy-kcal_100g優先、なければenergy_100gへフォールバック
		if v, ok := raw.Nutrients["energy-kcal_100g"]; ok {
			record.Calories = &v
		} else if v, ok := raw.Nutrients["energy_100g"]; ok {
			record.Calories = &v
		}
	}

	for _, m := range mappings {
		if v, ok := raw.Nutrients[m.label]; ok {
			m.assign(&record, v)
		}
	}

	return record
}
