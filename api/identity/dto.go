package identity

// AuthRequest carries the credentials of a register or login call.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	Token       string `json:"token"`
}
