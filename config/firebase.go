package config

// ServiceAccount holds essential fields from the identity-provider JSON key.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}
