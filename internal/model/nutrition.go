package model

// NutrientRecord は全トラッキングアイテムが保存される正規化済みの栄養レコード。
// 値はすべて100gあたり。欠損している栄養素はnilのままにする（0ではなく「不明」を意味する）。
type NutrientRecord struct {
	Name     string   `json:"name"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fats     *float64 `json:"fats,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
	Salt     *float64 `json:"salt,omitempty"`
	Fiber    *float64 `json:"fiber,omitempty"`

	SaturatedFat *float64 `json:"saturatedFat,omitempty"`
	TransFat     *float64 `json:"transFat,omitempty"`
	Cholesterol  *float64 `json:"cholesterol,omitempty"`
	SodiumMg     *float64 `json:"sodiumMg,omitempty"`
	CalciumMg    *float64 `json:"calciumMg,omitempty"`
	IronMg       *float64 `json:"ironMg,omitempty"`
	MagnesiumMg  *float64 `json:"magnesiumMg,omitempty"`
	PhosphorusMg *float64 `json:"phosphorusMg,omitempty"`
	PotassiumMg  *float64 `json:"potassiumMg,omitempty"`
	ZincMg       *float64 `json:"zincMg,omitempty"`
	VitaminA     *float64 `json:"vitaminA,omitempty"`
	VitaminB6    *float64 `json:"vitaminB6,omitempty"`
	VitaminB12   *float64 `json:"vitaminB12,omitempty"`
	VitaminC     *float64 `json:"vitaminC,omitempty"`
	VitaminD     *float64 `json:"vitaminD,omitempty"`
	VitaminE     *float64 `json:"vitaminE,omitempty"`
	VitaminK     *float64 `json:"vitaminK,omitempty"`
	Thiamin      *float64 `json:"thiamin,omitempty"`
	Riboflavin   *float64 `json:"riboflavin,omitempty"`
	Niacin       *float64 `json:"niacin,omitempty"`
	Folate       *float64 `json:"folate,omitempty"`
	Water        *float64 `json:"water,omitempty"`
	NovaGroup    *float64 `json:"novaGroup,omitempty"`
}

// FoodHint はテキスト検索が返す候補1件を表す。
// フルの栄養プロファイルはトラッキング時にfdcIdで再取得する。
type FoodHint struct {
	FdcID    int64    `json:"fdcId"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
}

// BarcodeProduct はバーコード検索プロバイダの生の商品フィールドを表す。
// 正規化はトラッキング時に行い、検索レスポンスではそのまま返す。
type BarcodeProduct struct {
	ProductImg  string         `json:"productImg"`
	Nutriments  map[string]any `json:"nutriments"`
	ServingSize string         `json:"servingSize"`
	Name        string         `json:"name"`
	GenericName string         `json:"genericName"`
}
