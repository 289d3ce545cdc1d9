package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name      string `json:"name"       validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,max=72"`
	Role      string `json:"role"`
	ManagerID *int64 `json:"manager_id"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// loginRequest accepts a JSON body {email, password} or an OAuth2 password
// form where the email travels as username.
type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required_without=Username"`
	Username string `json:"username" form:"username" validate:"required_without=Email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r loginRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Role        string `json:"role"`
}

// --- Feedback ---

type createFeedbackRequest struct {
	EmployeeID     int64  `json:"employee_id"    validate:"required,gt=0"`
	Strengths      string `json:"strengths"      validate:"required"`
	AreasToImprove string `json:"areasToImprove" validate:"required"`
	Sentiment      string `json:"sentiment"      validate:"required,oneof=POSITIVE NEUTRAL NEGATIVE"`
}

type feedbackResponse struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employeeId"`
	ManagerID      int64     `json:"managerId"`
	Strengths      string    `json:"strengths"`
	AreasToImprove string    `json:"areasToImprove"`
	Sentiment      string    `json:"sentiment"`
	Acknowledged   bool      `json:"acknowledged"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type createFeedbackResponse struct {
	Message  string           `json:"message"`
	Feedback feedbackResponse `json:"feedback"`
}

type teamEmployee struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type teamMemberResponse struct {
	Employee      teamEmployee   `json:"employee"`
	FeedbackCount int            `json:"feedback_count"`
	Sentiments    map[string]int `json:"sentiments"`
}

type dashboardResponse struct {
	Team []teamMemberResponse `json:"team"`
}

type timelineEntryResponse struct {
	ID             int64     `json:"id"`
	Sentiment      string    `json:"sentiment"`
	Strengths      string    `json:"strengths"`
	AreasToImprove string    `json:"areasToImprove"`
	Acknowledged   bool      `json:"acknowledged"`
	CreatedAt      time.Time `json:"createdAt"`
	ManagerName    string    `json:"managerName"`
}

type timelineResponse struct {
	Timeline []timelineEntryResponse `json:"timeline"`
}
