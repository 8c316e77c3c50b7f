package delegation

type CreateDelegationRequest struct {
	DelegateID string `json:"delegate_id" binding:"required,uuid"`
	ActiveFrom string `json:"active_from" binding:"required"`
	ActiveTo   string `json:"active_to" binding:"required"`
}

type DelegationResponse struct {
	ID         string `json:"id"`
	ManagerID  string `json:"manager_id"`
	DelegateID string `json:"delegate_id"`
	ActiveFrom string `json:"active_from"`
	ActiveTo   string `json:"active_to"`
}

func mapToResponse(d Delegation) DelegationResponse {
	return DelegationResponse{
		ID:         d.ID.String(),
		ManagerID:  d.ManagerID.String(),
		DelegateID: d.DelegateID.String(),
		ActiveFrom: d.ActiveFrom.Format("2006-01-02"),
		ActiveTo:   d.ActiveTo.Format("2006-01-02"),
	}
}

func mapToListResponse(delegations []Delegation) []DelegationResponse {
	resp := make([]DelegationResponse, len(delegations))
	for i, d := range delegations {
		resp[i] = mapToResponse(d)
	}
	return resp
}
