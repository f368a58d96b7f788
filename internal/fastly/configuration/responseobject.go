package configuration

// ResponseObject serves a synthetic response, optionally gated by a REQUEST
// condition.
type ResponseObject struct {
	Name             string `json:"name" yaml:"name"`
	RequestCondition string `json:"request_condition" yaml:"request_condition"`
	Response         string `json:"response" yaml:"response"`
	Status           int    `json:"status" yaml:"status"`
	Content          string `json:"content" yaml:"content"`
	ContentType      string `json:"content_type" yaml:"content_type"`
}

func (r ResponseObject) EntityName() string { return r.Name }

func (r ResponseObject) Defaulted() ResponseObject {
	if r.Response == "" {
		r.Response = "Ok"
	}
	if r.Status == 0 {
		r.Status = 200
	}
	return r
}

func (r ResponseObject) validate() error {
	return required(KindResponseObject, r.Name, "name", r.Name)
}
