package handler

type ContextKey string

var (
	RoleCtxKey        ContextKey = "role"
	SubCtxKey         ContextKey = "sub"
	MyInfoCtx         ContextKey = "myInfo"
	UserInfoCtx       ContextKey = "userInfo"
	CenterCtx         ContextKey = "center"
	SpecialtyCtx      ContextKey = "specialty"
	ActivityCtx       ContextKey = "activity"
	ConsultationCtx   ContextKey = "consultation"
	PlanningRecordCtx ContextKey = "planningRecord"
	AbsenceCtx        ContextKey = "absence"
)
