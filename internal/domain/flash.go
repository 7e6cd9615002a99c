package domain

// Flash is a one-shot payload attached to a session: written by the action
// that finishes a request, read exactly once by the next rendered page.
type Flash struct {
	Success    string      `json:"success,omitempty"`
	Error      string      `json:"error,omitempty"`
	OrderLines []OrderLine `json:"order_lines,omitempty"`
	OrderTotal *Money      `json:"order_total,omitempty"`
}

func (f Flash) IsZero() bool {
	return f.Success == "" && f.Error == "" && len(f.OrderLines) == 0 && f.OrderTotal == nil
}
