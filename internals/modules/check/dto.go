package check

type CreateRequest struct {
	Protocol       string `json:"protocol" validate:"required,oneof=http https"`
	URL            string `json:"url" validate:"required,max=2048"`
	Method         string `json:"method" validate:"required,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes" validate:"required,min=1,dive,gte=100,lte=599"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"required,min=1,max=5"`
}

type UpdateRequest struct {
	Protocol       *string `json:"protocol" validate:"omitempty,oneof=http https"`
	URL            *string `json:"url" validate:"omitempty,min=1,max=2048"`
	Method         *string `json:"method" validate:"omitempty,oneof=get post put delete"`
	SuccessCodes   []int   `json:"successCodes" validate:"omitempty,min=1,dive,gte=100,lte=599"`
	TimeoutSeconds *int    `json:"timeoutSeconds" validate:"omitempty,min=1,max=5"`
}

type CheckResponse struct {
	ID             string `json:"id"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	State          string `json:"state,omitempty"`
	LastChecked    int64  `json:"lastChecked,omitempty"`
}

func toResponse(c Check) CheckResponse {
	return CheckResponse{
		ID:             c.ID,
		Protocol:       string(c.Protocol),
		URL:            c.URL,
		Method:         string(c.Method),
		SuccessCodes:   c.SuccessCodes,
		TimeoutSeconds: c.TimeoutSeconds,
		State:          string(c.State),
		LastChecked:    c.LastChecked,
	}
}

func (r UpdateRequest) toCmd() UpdateCheckCmd {
	cmd := UpdateCheckCmd{
		URL:            r.URL,
		SuccessCodes:   r.SuccessCodes,
		TimeoutSeconds: r.TimeoutSeconds,
	}
	if r.Protocol != nil {
		p := Protocol(*r.Protocol)
		cmd.Protocol = &p
	}
	if r.Method != nil {
		m := Method(*r.Method)
		cmd.Method = &m
	}
	return cmd
}
