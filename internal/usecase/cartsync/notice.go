package cartsync

import "time"

type NoticeKind string

const (
	NoticeNetworkFailure NoticeKind = "network_failure"
	NoticeSyncDivergence NoticeKind = "sync_divergence"
)

const (
	msgAddFailed     = "Không thể thêm sản phẩm vào giỏ hàng. Vui lòng thử lại."
	msgRefreshFailed = "Không thể tải giỏ hàng từ máy chủ. Vui lòng thử lại."
	msgSyncDiverged  = "Giỏ hàng chưa được lưu đầy đủ và đã được đồng bộ lại với máy chủ."
	msgInitFailed    = "Không thể tải giỏ hàng của bạn. Vui lòng thử lại."
)

// Notice is a user-facing message produced by background work, drained by the next read.
type Notice struct {
	Kind    NoticeKind
	Message string
	At      time.Time
}

// noticeLog keeps the most recent notices up to a limit.
type noticeLog struct {
	limit int
	items []Notice
}

func newNoticeLog(limit int) noticeLog {
	if limit <= 0 {
		limit = 20
	}
	return noticeLog{limit: limit}
}

func (l *noticeLog) push(n Notice) {
	l.items = append(l.items, n)
	if over := len(l.items) - l.limit; over > 0 {
		l.items = append([]Notice(nil), l.items[over:]...)
	}
}

func (l *noticeLog) drain() []Notice {
	out := l.items
	l.items = nil
	return out
}
