package entity

// DashboardStats is the global task summary.
// CompletedTasks + PendingTasks always equals TotalTasks.
type DashboardStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
}

// HistoryStats summarises one employee's tasks. Failed is always zero:
// no failed status exists, the field stays for clients that read it.
type HistoryStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
}

type EmployeeHistory struct {
	Tasks []Task       `json:"tasks"`
	Stats HistoryStats `json:"stats"`
}

// SummarizeTasks counts tasks by completion.
func SummarizeTasks(tasks []Task) HistoryStats {
	stats := HistoryStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}
