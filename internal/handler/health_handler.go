package handler

import "net/http"

// Health はヘルスチェックエンドポイント。プロセスが生きていれば running を返す。
// GET /
func Health(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, "running")
}
