package user

import "unicode"

// ProfileResponse represents the signed-in user in API responses
type ProfileResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	School      string `json:"school"`
	Site        string `json:"site"`
	BankAccount string `json:"bank_account"`
	Address     string `json:"address"`
	Initial     string `json:"initial"`
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func NewProfileResponse(i Identity) ProfileResponse {
	resp := ProfileResponse{
		Name:        i.DisplayName(),
		Email:       orDash(i.Email),
		School:      orDash(i.School),
		Site:        orDash(i.Site),
		BankAccount: orDash(i.BankAccount),
		Address:     orDash(i.Address),
	}
	for _, r := range resp.Name {
		resp.Initial = string(unicode.ToUpper(r))
		break
	}
	return resp
}
