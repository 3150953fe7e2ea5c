package channel

import (
	"sort"

	mainmodel "fpa-order-api/internal/model/main"
)

// Select 从产品通道池中筛选可用通道：启用 + 金额在限额内，
// 按权重降序排列，同权重按通道ID升序保证确定性。
// 返回的顺序即故障转移的尝试顺序。
func Select(pool []mainmodel.Channel, amount int64) []mainmodel.Channel {
	eligible := make([]mainmodel.Channel, 0, len(pool))
	for _, ch := range pool {
		if ch.Status != 1 {
			continue
		}
		if !ch.AmountEligible(amount) {
			continue
		}
		eligible = append(eligible, ch)
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Weight != eligible[j].Weight {
			return eligible[i].Weight > eligible[j].Weight
		}
		return eligible[i].ChannelID < eligible[j].ChannelID
	})
	return eligible
}
