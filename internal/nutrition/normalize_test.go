package nutrition

import (
	"testing"
)

// --- DetectProvenance ---

func TestDetectProvenance_WithFdcID_IsTextSearch(t *testing.T) {
	payload := map[string]any{
		"fdcId":       float64(123456),
		"description": "Cheddar cheese",
	}

	if got := DetectProvenance(payload); got != ProvenanceTextSearch {
		t.Errorf("DetectProvenance() = %q, want %q", got, ProvenanceTextSearch)
	}
}

func TestDetectProvenance_WithoutFdcID_IsBarcode(t *testing.T) {
	payload := map[string]any{
		"product_name": "Chocolate bar",
		"nutriments":   map[string]any{"proteins_100g": 5.0},
	}

	if got := DetectProvenance(payload); got != ProvenanceBarcode {
		t.Errorf("DetectProvenance() = %q, want %q", got, ProvenanceBarcode)
	}
}

func TestDetectProvenance_FdcIDWithAnyValue_IsTextSearch(t *testing.T) {
	// 値の型ではなくキーの有無で判定する
	payload := map[string]any{"fdcId": nil}

	if got := DetectProvenance(payload); got != ProvenanceTextSearch {
		t.Errorf("DetectProvenance() = %q, want %q", got, ProvenanceTextSearch)
	}
}

// --- Normalize: テキスト検索 ---

func TestNormalize_TextSearch_MapsCoreMacros(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Cheddar cheese",
		Nutrients: map[string]float64{
			"Energy":                       402,
			"Protein":                      24.9,
			"Carbohydrate, by difference":  1.3,
			"Total lipid (fat)":            33.1,
			"Sugars, total including NLEA": 0.5,
			"Fiber, total dietary":         0,
		},
	}

	record := Normalize(raw)

	if record.Name != "Cheddar cheese" {
		t.Errorf("name = %q, want %q", record.Name, "Cheddar cheese")
	}
	assertFloat(t, "calories", record.Calories, 402)
	assertFloat(t, "protein", record.Protein, 24.9)
	assertFloat(t, "carbs", record.Carbs, 1.3)
	assertFloat(t, "fats", record.Fats, 33.1)
	assertFloat(t, "sugar", record.Sugar, 0.5)
	assertFloat(t, "fiber", record.Fiber, 0)
}

func TestNormalize_TextSearch_SodiumDerivesSalt(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Salted crackers",
		Nutrients: map[string]float64{
			"Sodium, Na": 1000, // mg
		},
	}

	record := Normalize(raw)

	// sodiumはmgのまま保持し、salt(g)はsodium/1000で導出する
	assertFloat(t, "sodium_mg", record.SodiumMg, 1000)
	assertFloat(t, "salt", record.Salt, 1)
}

func TestNormalize_TextSearch_MapsMicronutrients(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Spinach",
		Nutrients: map[string]float64{
			"Calcium, Ca":                    99,
			"Iron, Fe":                       2.7,
			"Potassium, K":                   558,
			"Vitamin C, total ascorbic acid": 28.1,
			"Vitamin K (phylloquinone)":      482.9,
			"Folate, total":                  194,
			"Water":                          91.4,
		},
	}

	record := Normalize(raw)

	assertFloat(t, "calcium_mg", record.CalciumMg, 99)
	assertFloat(t, "iron_mg", record.IronMg, 2.7)
	assertFloat(t, "potassium_mg", record.PotassiumMg, 558)
	assertFloat(t, "vitamin_c", record.VitaminC, 28.1)
	assertFloat(t, "vitamin_k", record.VitaminK, 482.9)
	assertFloat(t, "folate", record.Folate, 194)
	assertFloat(t, "water", record.Water, 91.4)
}

func TestNormalize_TextSearch_MissingFieldsStayNil(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Mystery item",
		Nutrients: map[string]float64{
			"Energy": 100,
		},
	}

	record := Normalize(raw)

	// 欠損は0ではなくnilのまま
	if record.Protein != nil {
		t.Errorf("protein = %v, want nil for missing field", *record.Protein)
	}
	if record.Salt != nil {
		t.Errorf("salt = %v, want nil for missing field", *record.Salt)
	}
	if record.SodiumMg != nil {
		t.Errorf("sodium_mg = %v, want nil for missing field", *record.SodiumMg)
	}
	if record.VitaminA != nil {
		t.Errorf("vitamin_a = %v, want nil for missing field", *record.VitaminA)
	}
}

func TestNormalize_TextSearch_UnknownLabelsAreIgnored(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Item",
		Nutrients: map[string]float64{
			"Energy":            250,
			"Caffeine":          40, // 対応表にないラベル
			"proteins_100g":     9,  // バーコード形式のキーはテキスト検索では無効
			"Some future field": 1,
		},
	}

	record := Normalize(raw)

	assertFloat(t, "calories", record.Calories, 250)
	if record.Protein != nil {
		t.Errorf("protein = %v, want nil (barcode key must not map)", *record.Protein)
	}
}

// --- Normalize: バーコード ---

func TestNormalize_Barcode_MapsPer100gFields(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceBarcode,
		Name:       "Chocolate bar",
		Nutrients: map[string]float64{
			"energy-kcal_100g":   534,
			"proteins_100g":      7.3,
			"carbohydrates_100g": 57,
			"fat_100g":           30,
			"sugars_100g":        55,
			"salt_100g":          0.24,
			"fiber_100g":         2.2,
			"saturated-fat_100g": 18,
			"nova-group":         4,
		},
	}

	record := Normalize(raw)

	assertFloat(t, "calories", record.Calories, 534)
	assertFloat(t, "protein", record.Protein, 7.3)
	assertFloat(t, "carbs", record.Carbs, 57)
	assertFloat(t, "fats", record.Fats, 30)
	assertFloat(t, "sugar", record.Sugar, 55)
	assertFloat(t, "salt", record.Salt, 0.24)
	assertFloat(t, "fiber", record.Fiber, 2.2)
	assertFloat(t, "saturated_fat", record.SaturatedFat, 18)
	assertFloat(t, "nova_group", record.NovaGroup, 4)
}

func TestNormalize_Barcode_EnergyKcalTakesPrecedence(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceBarcode,
		Name:       "Item",
		Nutrients: map[string]float64{
			"energy-kcal_100g": 120,
			"energy_100g":      502, // kJ値。kcalがある場合は使わない
		},
	}

	record := Normalize(raw)

	assertFloat(t, "calories", record.Calories, 120)
}

func TestNormalize_Barcode_FallsBackToEnergyField(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceBarcode,
		Name:       "Item",
		Nutrients: map[string]float64{
			"energy_100g":   200,
			"proteins_100g": 10,
		},
	}

	record := Normalize(raw)

	assertFloat(t, "calories", record.Calories, 200)
}

func TestNormalize_Barcode_NoEnergyFields_CaloriesStayNil(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceBarcode,
		Name:       "Item",
		Nutrients: map[string]float64{
			"proteins_100g": 10,
		},
	}

	record := Normalize(raw)

	if record.Calories != nil {
		t.Errorf("calories = %v, want nil when both energy fields are missing", *record.Calories)
	}
}

func TestNormalize_Barcode_TextSearchLabelsAreIgnored(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceBarcode,
		Name:       "Item",
		Nutrients: map[string]float64{
			"Energy":  402, // テキスト検索形式のラベルはバーコードでは無効
			"Protein": 25,
		},
	}

	record := Normalize(raw)

	if record.Calories != nil {
		t.Errorf("calories = %v, want nil (text-search label must not map)", *record.Calories)
	}
	if record.Protein != nil {
		t.Errorf("protein = %v, want nil (text-search label must not map)", *record.Protein)
	}
}

func TestNormalize_EmptyNutrients_ReturnsNameOnlyRecord(t *testing.T) {
	raw := RawItem{
		Provenance: ProvenanceTextSearch,
		Name:       "Empty item",
		Nutrients:  map[string]float64{},
	}

	record := Normalize(raw)

	if record.Name != "Empty item" {
		t.Errorf("name = %q, want %q", record.Name, "Empty item")
	}
	if record.Calories != nil || record.Protein != nil || record.Salt != nil {
		t.Error("expected all nutrient fields to stay nil for empty payload")
	}
}

// --- ヘルパー ---

func assertFloat(t *testing.T, field string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %v", field, want)
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
