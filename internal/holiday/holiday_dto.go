package holiday

import "go-attendance/internal/shared/dateutil"

type CreateHolidayRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Date        string  `json:"date" binding:"required"`
	Description *string `json:"description"`
}

type ListQuery struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

type CreateResponse struct {
	Message string          `json:"message"`
	Holiday HolidayResponse `json:"holiday"`
}

type ListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        dateutil.Format(h.Date),
		Description: h.Description,
	}
}

func mapToListResponse(holidays []Holiday) []HolidayResponse {
	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapToResponse(h)
	}
	return res
}
