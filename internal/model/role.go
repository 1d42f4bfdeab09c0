package model

// 用户角色：管理员可越过录入时限写入（落审计），其余角色仅在窗口内操作
const (
	RoleAdmin     = "admin"
	RoleTeacher   = "teacher"
	RoleInspector = "inspector"
)
