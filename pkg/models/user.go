package models

// User is one account record loaded from the users directory.
type User struct {
	Username     string   `yaml:"-"`
	DisplayName  string   `yaml:"display_name"`
	PasswordHash string   `yaml:"password_hash"`
	Roles        []string `yaml:"roles"`
}
