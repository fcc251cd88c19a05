package dto

// RefreshReq は/refreshおよび/logoutエンドポイントのリクエストボディを表します。
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse はログイン・リフレッシュ成功時のレスポンスボディです。
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
