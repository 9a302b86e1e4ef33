package kpi

// Complaint channels. These double as the keys of the configurable weight
// table; a channel missing from the table weighs 1.
const (
	ChannelWhatsApp     = "whatsapp"
	ChannelSocialMedia  = "social_media"
	ChannelGMaps        = "gmaps"
	ChannelOnlineOrder  = "online_order"
	ChannelLateHandling = "late_handling"
)

// Channels lists every complaint channel in display order.
var Channels = []string{
	ChannelWhatsApp,
	ChannelSocialMedia,
	ChannelGMaps,
	ChannelOnlineOrder,
	ChannelLateHandling,
}

const defaultChannelWeight = 1.0

// WeightedComplaints computes the weighted complaint total for one store
// month: sum over channels of count x weight. Negative counts or weights
// are rejected so a bad row cannot silently depress the score.
func WeightedComplaints(counts map[string]int, weights map[string]float64) (float64, error) {
	var total float64
	for channel, count := range counts {
		if count < 0 {
			return 0, errNegative("count["+channel+"]", float64(count))
		}
		weight, ok := weights[channel]
		if !ok {
			weight = defaultChannelWeight
		}
		if weight < 0 {
			return 0, errNegative("weight["+channel+"]", weight)
		}
		total += float64(count) * weight
	}
	return total, nil
}
