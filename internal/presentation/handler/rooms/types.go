package rooms

type createRoomRequest struct {
	AdminID       string `json:"adminId"`
	AdminName     string `json:"adminName"`
	UseFreeCenter int    `json:"useFreeCenter"`
}

type joinRoomRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type adminRequest struct {
	AdminID string `json:"adminId"`
}

type claimRequest struct {
	UserID string `json:"userId"`
}

type kickRequest struct {
	AdminID string `json:"adminId"`
	UserID  string `json:"userId"`
}
