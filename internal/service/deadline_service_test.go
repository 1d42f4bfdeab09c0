package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"class-inspect/backend/internal/model"
)

func newDeadlineTestService(t *testing.T, now time.Time) *deadlineService {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("加载时区失败: %v", err)
	}
	return &deadlineService{
		cal:    testCalendar(loc),
		loc:    loc,
		now:    func() time.Time { return now },
		logger: zap.NewNop(),
	}
}

func TestDeadlineDailyToday(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	now := time.Date(2025, 9, 3, 15, 30, 0, 0, loc)
	svc := newDeadlineTestService(t, now)

	for _, role := range []string{model.RoleAdmin, model.RoleTeacher, model.RoleInspector} {
		resp, err := svc.Check(context.Background(), RecordTypeDaily, mustDate("2025-09-03", loc), role)
		if err != nil {
			t.Fatalf("角色 %s 判定失败: %v", role, err)
		}
		if !resp.Allowed || resp.IsOverride {
			t.Errorf("角色 %s 当天录入应放行且不标记越窗, got allowed=%v override=%v", role, resp.Allowed, resp.IsOverride)
		}
	}
}

func TestDeadlineDailyPastDate(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	now := time.Date(2025, 9, 3, 9, 0, 0, 0, loc)
	svc := newDeadlineTestService(t, now)
	yesterday := mustDate("2025-09-02", loc)

	resp, err := svc.Check(context.Background(), RecordTypeDaily, yesterday, model.RoleTeacher)
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if resp.Allowed {
		t.Error("普通角色补录昨日日检应被拒绝")
	}
	if resp.Message == "" {
		t.Error("拒绝时应返回提示信息")
	}

	resp, err = svc.Check(context.Background(), RecordTypeDaily, yesterday, model.RoleAdmin)
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if !resp.Allowed || !resp.IsOverride {
		t.Errorf("管理员补录应放行并标记越窗, got allowed=%v override=%v", resp.Allowed, resp.IsOverride)
	}
}

// 第 1 周（09-01 至 09-07）周五为 09-05，截止时刻应为 09-08（周一）12:00
func TestDeadlineWeeklyWindow(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	target := mustDate("2025-09-03", loc)

	cases := []struct {
		name    string
		now     time.Time
		role    string
		allowed bool
		over    bool
	}{
		{"周内正常录入", time.Date(2025, 9, 4, 10, 0, 0, 0, loc), model.RoleTeacher, true, false},
		{"截止前一分钟", time.Date(2025, 9, 8, 11, 59, 0, 0, loc), model.RoleTeacher, true, false},
		{"截止时刻即关闭", time.Date(2025, 9, 8, 12, 0, 0, 0, loc), model.RoleTeacher, false, false},
		{"截止后管理员越窗", time.Date(2025, 9, 9, 8, 0, 0, 0, loc), model.RoleAdmin, true, true},
		{"开窗之前", time.Date(2025, 8, 28, 10, 0, 0, 0, loc), model.RoleInspector, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newDeadlineTestService(t, tc.now)
			resp, err := svc.Check(context.Background(), RecordTypeWeekly, target, tc.role)
			if err != nil {
				t.Fatalf("判定失败: %v", err)
			}
			if resp.Allowed != tc.allowed || resp.IsOverride != tc.over {
				t.Errorf("期望 allowed=%v override=%v, got allowed=%v override=%v",
					tc.allowed, tc.over, resp.Allowed, resp.IsOverride)
			}
			if resp.DeadlineFormatted != "2025-09-08 12:00" {
				t.Errorf("截止时刻应为 2025-09-08 12:00, got %s", resp.DeadlineFormatted)
			}
		})
	}
}

// 判定只依赖校历固定时区，宿主进程时区无关：用 UTC 时刻跨过东八区正午边界
func TestDeadlineWeeklyTimezoneIndependent(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	target := mustDate("2025-09-03", loc)

	// 2025-09-08 03:59 UTC = 东八区 11:59，窗口尚未关闭
	svc := newDeadlineTestService(t, time.Date(2025, 9, 8, 3, 59, 0, 0, time.UTC))
	resp, err := svc.Check(context.Background(), RecordTypeWeekly, target, model.RoleTeacher)
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if !resp.Allowed {
		t.Error("东八区 11:59 应仍在窗口内")
	}

	// 2025-09-08 04:00 UTC = 东八区 12:00，窗口已关闭
	svc = newDeadlineTestService(t, time.Date(2025, 9, 8, 4, 0, 0, 0, time.UTC))
	resp, err = svc.Check(context.Background(), RecordTypeWeekly, target, model.RoleTeacher)
	if err != nil {
		t.Fatalf("判定失败: %v", err)
	}
	if resp.Allowed {
		t.Error("东八区 12:00 应已关闭窗口")
	}
}

func TestDeadlineErrors(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	svc := newDeadlineTestService(t, time.Date(2025, 9, 3, 10, 0, 0, 0, loc))

	if _, err := svc.Check(context.Background(), "monthly", mustDate("2025-09-03", loc), model.RoleTeacher); !errors.Is(err, ErrInvalidRecordType) {
		t.Errorf("未知记录类型应返回 ErrInvalidRecordType, got %v", err)
	}
	if _, err := svc.Check(context.Background(), RecordTypeWeekly, mustDate("2026-03-01", loc), model.RoleTeacher); !errors.Is(err, ErrDateOutsideSemester) {
		t.Errorf("学期外日期应返回 ErrDateOutsideSemester, got %v", err)
	}
}
