// Package nutrition は外部プロバイダの栄養ペイロードを正規化レコードへ変換する。
package nutrition

// Provenance は生の栄養ペイロードを生成した外部プロバイダを表すタグ。
// フィールドの有無による暗黙の判定はインジェスト境界の1箇所に閉じ込め、
// 以降はこのタグで分岐する。
type Provenance string

const (
	// ProvenanceTextSearch はテキスト検索プロバイダ由来を示す。
	// 栄養値は英語ラベル（"Energy"、"Total lipid (fat)" 等）でキーされる。
	ProvenanceTextSearch Provenance = "text-search"
	// ProvenanceBarcode はバーコード検索プロバイダ由来を示す。
	// 栄養値は "_100g" サフィックスの機械フィールド名でキーされる。
	ProvenanceBarcode Provenance = "barcode"
)

// RawItem はインジェスト境界でタグ付けされた生の栄養ペイロード。
type RawItem struct {
	Provenance Provenance
	Name       string
	Nutrients  map[string]float64
}

// DetectProvenance は生ペイロードからプロバイダを判定する。
// フードカタログID（fdcId）を持つものはテキスト検索由来、それ以外はバーコード由来。
func DetectProvenance(payload map[string]any) Provenance {
	if _, ok := payload["fdcId"]; ok {
		return ProvenanceTextSearch
	}
	return ProvenanceBarcode
}
