package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/metrics"
)

// OversoldLister はオーバーセルされたフライトを列挙するインターフェース
type OversoldLister interface {
	ListOversold(ctx context.Context) ([]*flight.Oversold, error)
}

// OversellMonitor は販売枚数が総座席数を超えたフライトを監視するワーカー
// 空席数は読み取り時の導出値であり負数を丸めないため、
// 不変条件違反はここで検出して通報する。0件が正常
type OversellMonitor struct {
	flightRepo OversoldLister
	metrics    *metrics.Metrics
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewOversellMonitor は新しいモニターを作成
func NewOversellMonitor(flightRepo OversoldLister, m *metrics.Metrics, interval time.Duration) *OversellMonitor {
	return &OversellMonitor{
		flightRepo: flightRepo,
		metrics:    m,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start はモニターを開始
func (m *OversellMonitor) Start(ctx context.Context) {
	logger.Info("オーバーセル監視開始", zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("オーバーセル監視停止（コンテキストキャンセル）")
			return
		case <-m.stopCh:
			logger.Info("オーバーセル監視停止（シグナル受信）")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Stop はモニターを停止
func (m *OversellMonitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

// check はオーバーセルされたフライトを検出して通報
func (m *OversellMonitor) check(ctx context.Context) {
	log := logger.Get()
	log.Debug("オーバーセルチェック開始")

	oversold, err := m.flightRepo.ListOversold(ctx)
	if err != nil {
		log.Error("オーバーセルチェック失敗", zap.Error(err))
		return
	}

	if m.metrics != nil {
		m.metrics.OversoldFlights.Set(float64(len(oversold)))
	}

	if len(oversold) == 0 {
		log.Debug("オーバーセルなし")
		return
	}

	for _, o := range oversold {
		log.Error("オーバーセル検出",
			zap.String("flight_id", o.FlightID),
			zap.Int("capacity", o.Capacity),
			zap.Int("sold", o.Sold),
		)
	}
}
