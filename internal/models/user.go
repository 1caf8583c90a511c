package models

// User is the account summary the backend returns on login and signup.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
