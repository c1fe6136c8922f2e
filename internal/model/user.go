package model

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Email        string `json:"email"`
}

type AuthData struct {
	AuthToken string `json:"authToken"`
	Username  string `json:"username"`
}
