package queueservice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fyerfyer/blockq/queue"
)

// StatsData 表示队列状态的可序列化数据结构
type StatsData struct {
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	Capacity         int       `json:"capacity"`
	Size             int       `json:"size"`
	Puts             uint64    `json:"puts"`
	Gets             uint64    `json:"gets"`
	PutBlocks        uint64    `json:"putBlocks"`
	GetBlocks        uint64    `json:"getBlocks"`
	PutTimeouts      uint64    `json:"putTimeouts"`
	GetTimeouts      uint64    `json:"getTimeouts"`
	Cancellations    uint64    `json:"cancellations"`
	Rejected         uint64    `json:"rejected"`
	WaitingProducers int       `json:"waitingProducers"`
	WaitingConsumers int       `json:"waitingConsumers"`
}

// NewStatsData 从队列状态构造可序列化数据
func NewStatsData(id, name string, stats queue.Stats) StatsData {
	return StatsData{
		ID:               id,
		Name:             name,
		CreatedAt:        stats.CreatedAt,
		Capacity:         stats.Capacity,
		Size:             stats.Size,
		Puts:             stats.Puts,
		Gets:             stats.Gets,
		PutBlocks:        stats.PutBlocks,
		GetBlocks:        stats.GetBlocks,
		PutTimeouts:      stats.PutTimeouts,
		GetTimeouts:      stats.GetTimeouts,
		Cancellations:    stats.Cancellations,
		Rejected:         stats.Rejected,
		WaitingProducers: stats.WaitingProducers,
		WaitingConsumers: stats.WaitingConsumers,
	}
}

// FormatQueueInfo 返回队列信息的格式化字符串表示
func FormatQueueInfo(info QueueInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Queue: %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("ID: %s\n", info.ID))
	sb.WriteString(fmt.Sprintf("Size: %d", info.Stats.Size))
	if info.Stats.Capacity > 0 {
		sb.WriteString(fmt.Sprintf("/%d", info.Stats.Capacity))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimeAgo(info.Stats.CreatedAt)))
	sb.WriteString(fmt.Sprintf("Operations: %d put, %d get\n",
		info.Stats.Puts, info.Stats.Gets))

	return sb.String()
}

// FormatQueueStats 返回队列统计信息的格式化字符串表示
func FormatQueueStats(stats queue.Stats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d\n", stats.Size))
	if stats.Capacity > 0 {
		sb.WriteString(fmt.Sprintf("Capacity: %d (%.1f%% utilized)\n",
			stats.Capacity, stats.Utilization()*100))
	} else {
		sb.WriteString("Capacity: unbounded\n")
	}

	sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimeAgo(stats.CreatedAt)))
	sb.WriteString(fmt.Sprintf("Operations: %d put, %d get\n", stats.Puts, stats.Gets))

	if stats.WaitingProducers > 0 || stats.WaitingConsumers > 0 {
		sb.WriteString(fmt.Sprintf("Waiting: %d producers, %d consumers\n",
			stats.WaitingProducers, stats.WaitingConsumers))
	}

	if stats.PutBlocks > 0 || stats.GetBlocks > 0 {
		sb.WriteString(fmt.Sprintf("Blocks: %d put, %d get\n",
			stats.PutBlocks, stats.GetBlocks))
	}

	if stats.PutTimeouts > 0 || stats.GetTimeouts > 0 {
		sb.WriteString(fmt.Sprintf("Timeouts: %d put, %d get\n",
			stats.PutTimeouts, stats.GetTimeouts))
	}

	if stats.Cancellations > 0 {
		sb.WriteString(fmt.Sprintf("Cancelled: %d\n", stats.Cancellations))
	}

	if stats.Rejected > 0 {
		sb.WriteString(fmt.Sprintf("Rejected: %d\n", stats.Rejected))
	}

	return sb.String()
}

// SerializeStats 将队列状态序列化为JSON
func SerializeStats(data StatsData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// DeserializeStats 从JSON反序列化队列状态
func DeserializeStats(data []byte) (StatsData, error) {
	var statsData StatsData
	err := json.Unmarshal(data, &statsData)
	return statsData, err
}

// formatTimeAgo 将时间格式化为人类可读的"多久之前"字符串
func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	seconds := int(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d seconds ago", seconds)
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	return fmt.Sprintf("%d days ago", days)
}

// ParseItems 解析以逗号分隔的项目字符串，忽略空白项
func ParseItems(itemsStr string) []string {
	if itemsStr == "" {
		return nil
	}

	parts := strings.Split(itemsStr, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
