package health

// Integrations reports which optional integrations are configured. Values
// only, never the credentials themselves.
type Integrations struct {
	RdwAppToken bool `json:"rdw_app_token"`
	Supabase    bool `json:"supabase"`
}

type Response struct {
	Status       string       `json:"status"`
	Integrations Integrations `json:"integrations"`
}
