package dto

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SetCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type AddCreditsRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

type CorrectTotalRequest struct {
	TotalPurchasedCredits int `json:"totalPurchasedCredits" binding:"gte=0"`
}
