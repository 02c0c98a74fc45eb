package registry

import (
	"time"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

func v(nodeID, stake string, uptime float64, connected bool) types.ValidatorSummary {
	return types.ValidatorSummary{NodeID: nodeID, Stake: stake, Uptime: uptime, Connected: connected}
}

// FallbackNetworks returns the static listing served when the platform
// chain cannot be reached. Block times are relative to now.
func FallbackNetworks(now time.Time) []types.Network {
	return []types.Network{
		{
			ID:             "2M47TxWHGnhNtq6pM5zPXdATBtuqubxn5EPFgFmEawCQr9WFML",
			Name:           "GUNZ",
			SubnetID:       "2MbQjnTg3yxEtZBfnamboi7K9AajwNq7WExiwReBQSBtwbBVer",
			VMID:           "nZiR8U7nEv51M7THczAzjXPNKdjFP75Ci4HxLevo9duYiLAHn",
			ValidatorCount: 8,
			Validators: []types.ValidatorSummary{
				v("NodeID-MFrZFVCXPv5iCn6M9K6XduxGTYp891xHZ", "2.0K AVAX", 99.5, true),
				v("NodeID-NFBbbJ4qCmNaCzeW7sxErhvWqvEQMnYcN", "2.0K AVAX", 99.8, true),
				v("NodeID-GWPcbFJZFfZreETSoWjPimr846mXEKCtu", "2.0K AVAX", 99.2, true),
				v("NodeID-P7oB2McjBGgW2NXXWVYjV8JEDFoW9xDE5", "2.0K AVAX", 98.9, true),
				v("NodeID-2ZGbd2MkdkS3V4LtM6gBRgShKEU2mM7BJ", "2.0K AVAX", 99.7, true),
				v("NodeID-7Xhw2mDxuDS44j68TCb6eb3LMjMBufd1k", "2.0K AVAX", 99.1, false),
				v("NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTy6", "2.0K AVAX", 99.6, true),
				v("NodeID-4CWTbdvgXHY1CLXqQNAp22nJDo5nAmts6", "2.0K AVAX", 99.4, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    false,
			Description:   "A Web3 gaming platform featuring Battle Royale and competitive gaming experiences on blockchain.",
			Website:       "https://gunz.dev/",
			TokenSymbol:   "GUNZ",
			TotalSupply:   "1,000,000,000",
			CreatedAt:     "2023-06-20",
			BlockHeight:   1456782,
			LastBlockTime: now.Add(-3200 * time.Millisecond),
			AvgBlockTime:  1.8,
			TPS:           61.5,
		},
		{
			ID:             "2tmrrBo1Lgt1mzzvPSFt73kkQKFas5d1AP88tv9cicwoFp8BSn",
			Name:           "Beam",
			SubnetID:       "eYwmVU67LmSfZb1RwqCMhBYkFyG8ftxn6jAwqzFmxC9STBWLC",
			VMID:           "kLPs8zGsTVZ28DhP1VefPCFbCgS7o5bDNez8JUxPVw9E6Ubbz",
			ValidatorCount: 12,
			Validators: []types.ValidatorSummary{
				v("NodeID-MFrZFVCXPv5iCn6M9K6XduxGTYp891xHZ", "2.0K AVAX", 99.8, true),
				v("NodeID-NFBbbJ4qCmNaCzeW7sxErhvWqvEQMnYcN", "2.0K AVAX", 99.9, true),
				v("NodeID-GWPcbFJZFfZreETSoWjPimr846mXEKCtu", "2.0K AVAX", 98.7, true),
				v("NodeID-P7oB2McjBGgW2NXXWVYjV8JEDFoW9xDE5", "2.2K AVAX", 99.5, true),
				v("NodeID-2ZGbd2MkdkS3V4LtM6gBRgShKEU2mM7BJ", "1.8K AVAX", 99.2, true),
				v("NodeID-7Xhw2mDxuDS44j68TCb6eb3LMjMBufd1k", "1.9K AVAX", 99.7, true),
				v("NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTy6", "2.1K AVAX", 99.1, false),
				v("NodeID-4CWTbdvgXHY1CLXqQNAp22nJDo5nAmts6", "1.7K AVAX", 99.6, true),
				v("NodeID-8KuMQH8vG2Fqd3DfWvZ5YjPcqBqXLKz4H", "2.3K AVAX", 99.3, true),
				v("NodeID-5WbN9mQjH8Lr6VfYgKzP2dRcvBqTuXz3k", "1.6K AVAX", 99.0, true),
				v("NodeID-3LcQ8fMdY2Kd4VtRzPcxBnWqJgL9kF7V", "2.0K AVAX", 99.8, true),
				v("NodeID-9GwR7pQjZ6Mc3BfXdKcTvYqLnH2xPj8N", "1.9K AVAX", 99.4, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    false,
			Description:   "A gaming-focused blockchain platform that enables seamless integration of blockchain technology into games.",
			Website:       "https://www.onbeam.com/",
			TokenSymbol:   "BEAM",
			TotalSupply:   "62,500,000",
			CreatedAt:     "2023-08-15",
			BlockHeight:   1893472,
			LastBlockTime: now.Add(-1500 * time.Millisecond),
			AvgBlockTime:  2.0,
			TPS:           52.1,
		},
		{
			ID:             "uNjCdhwZ25PsvfPcZG2Ghv4zGCVzfpKiydGjZnbyvY6mcJLAi",
			Name:           "Dexalot",
			SubnetID:       "YDLrMpW9pkHPaRgRZR5fj883YUkJEoTc7XH28L8QBCY9v8FtV",
			VMID:           "mDVSxzeWHmgqrcXK1tPYqavqTK5MC3mMqme6r3a6cz2fqMfqf",
			ValidatorCount: 5,
			Validators: []types.ValidatorSummary{
				v("NodeID-MFrZFVCXPv5iCn6M9K6XduxGTYp891xHZ", "2.0K AVAX", 99.5, true),
				v("NodeID-NFBbbJ4qCmNaCzeW7sxErhvWqvEQMnYcN", "2.0K AVAX", 99.8, true),
				v("NodeID-GWPcbFJZFfZreETSoWjPimr846mXEKCtu", "2.0K AVAX", 99.2, true),
				v("NodeID-P7oB2McjBGgW2NXXWVYjV8JEDFoW9xDE5", "2.0K AVAX", 98.9, true),
				v("NodeID-2ZGbd2MkdkS3V4LtM6gBRgShKEU2mM7BJ", "2.0K AVAX", 99.7, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    true,
			Description:   "A decentralized exchange focused on bringing a traditional centralized exchange look and feel to DeFi.",
			Website:       "https://dexalot.com/",
			TokenSymbol:   "ALOT",
			TotalSupply:   "100,000,000",
			CreatedAt:     "2022-12-01",
			BlockHeight:   3247892,
			LastBlockTime: now.Add(-1800 * time.Millisecond),
			AvgBlockTime:  2.2,
			TPS:           34.7,
		},
		{
			ID:             "222KARi6VgSZXbewFp1BvZgyuSKVa9JPb7swhbwN9fUHFKgxUD",
			Name:           "Gunzilla",
			SubnetID:       "9ewhue9Lyryt1G4H1icgZotc6wRVwiPgmiVemSN24JXwg91JH",
			VMID:           "YUKPT5yt72CKSu4gD4gaRhkSAEtqcGycn2tfyz1Vq7oVF1sc8",
			ValidatorCount: 6,
			Validators: []types.ValidatorSummary{
				v("NodeID-7Xhw2mDxuDS44j68TCb6eb3LMjMBufd1k", "3.2K AVAX", 99.8, true),
				v("NodeID-6ZmBHXTqjknJoZtXbnJ6x7af863rXDTy6", "2.8K AVAX", 99.6, true),
				v("NodeID-4CWTbdvgXHY1CLXqQNAp22nJDo5nAmts6", "3.0K AVAX", 99.9, true),
				v("NodeID-8KuMQH8vG2Fqd3DfWvZ5YjPcqBqXLKz4H", "2.5K AVAX", 99.2, true),
				v("NodeID-5WbN9mQjH8Lr6VfYgKzP2dRcvBqTuXz3k", "3.1K AVAX", 99.7, false),
				v("NodeID-3LcQ8fMdY2Kd4VtRzPcxBnWqJgL9kF7V", "2.9K AVAX", 99.4, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    false,
			Description:   "Gunzilla Games' Web3 gaming ecosystem featuring Battle Royale experiences and NFT integration.",
			Website:       "https://gunzillagames.com/",
			TokenSymbol:   "GUN",
			TotalSupply:   "500,000,000",
			CreatedAt:     "2023-09-10",
			BlockHeight:   987654,
			LastBlockTime: now.Add(-2100 * time.Millisecond),
			AvgBlockTime:  1.7,
			TPS:           73.2,
		},
		{
			ID:             "48CGt26jWt2YauRcV222Uryzj1tLojpKBKYkXYzWBTnma7QrF",
			Name:           "Amichain",
			SubnetID:       "2LxjhW4wfLc26Jn1HnzEhcnvsBpbgKKz6LSvEwgRtT7qHw4y3u",
			VMID:           "srEXiWaHuhNyGwPUi444Tu47ZEDwxTWrbQiuD7FmgSAQ6X7Dy",
			ValidatorCount: 4,
			Validators: []types.ValidatorSummary{
				v("NodeID-BrK8mNgL3Fq7VwPjXdKcTvYqLnH2xPj8N", "1.8K AVAX", 99.1, true),
				v("NodeID-CsP9oQkZ4Dr8XfReLbKdUvZrMnI3yQk9O", "2.2K AVAX", 99.6, true),
				v("NodeID-DtQ0pRlA5Es9YgSfMcLeVwAsNoJ4zRl0P", "1.9K AVAX", 99.3, false),
				v("NodeID-EuR1qSmB6Ft0ZhTgNdMfXxBsOpK5aSm1Q", "2.1K AVAX", 99.8, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    true,
			Description:   "Amichain - A specialized blockchain network for social and community-driven applications.",
			TokenSymbol:   "AMI",
			TotalSupply:   "N/A",
			CreatedAt:     "N/A",
			BlockHeight:   654321,
			LastBlockTime: now.Add(-2800 * time.Millisecond),
			AvgBlockTime:  2.3,
			TPS:           28.9,
		},
		{
			ID:             "Zn4mYHv5SqzLdkYW3j2JYhEq5YXnEw6y3tYCy7qZs1BQaDdP9",
			Name:           "DeFi Kingdoms (Crystalvale)",
			SubnetID:       "Vn3aX6hNRstj5VHHm2TEJmpdVYNNhNkHtBhKXuTXajp5XkgaV",
			VMID:           "mDVSxzeWHmgqrcXK1tPYqavqTK5MC3mMqme6r3a6cz2fqMfqf",
			ValidatorCount: 8,
			Validators: []types.ValidatorSummary{
				v("NodeID-CvmkjQJgE2Ax78YpGqF6hiJavD6nU6EZv", "2.0K AVAX", 99.6, true),
				v("NodeID-DyQ8WfpZkE3BzV6nL7T8hJkR3mN6P9gX4", "2.0K AVAX", 99.3, true),
				v("NodeID-EzR9XjqFmF4CaW7oM8U9iKlS4nO7Q0hY5", "2.0K AVAX", 99.8, true),
				v("NodeID-FaS0YkrGnG5DbX8pN9V0jLmT5oP8R1iZ6", "2.0K AVAX", 99.1, false),
				v("NodeID-GbT1ZlsHoH6EcY9qO0W1kMnU6pQ9S2jA7", "2.0K AVAX", 99.7, true),
				v("NodeID-HcU2AmtIpI7FdZ0rP1X2lNoV7qR0T3kB8", "2.0K AVAX", 99.4, true),
				v("NodeID-IdV3BnuJqJ8GeA1sQ2Y3mOpW8rS1U4lC9", "2.0K AVAX", 99.2, true),
				v("NodeID-JeW4CovKrK9HfB2tR3Z4nPqX9sT2V5mD0", "2.0K AVAX", 99.9, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    true,
			Description:   "DeFi Kingdoms Crystalvale - A blockchain gaming metaverse featuring fantasy RPG gameplay and DeFi economic systems.",
			Website:       "https://defikingdoms.com/",
			TokenSymbol:   "JEWEL",
			TotalSupply:   "125,000,000",
			CreatedAt:     "2022-03-30",
			BlockHeight:   2156789,
			LastBlockTime: now.Add(-1200 * time.Millisecond),
			AvgBlockTime:  2.0,
			TPS:           45.3,
		},
		{
			ID:             "ASj3nF4JvMwx2P6R8T7kL1Zs5Y9eC3dW4uGvBnH8m2Qx1KpE7",
			Name:           "STEPN GO",
			SubnetID:       "QyL8hNw9vP2fJ4tC6B5rE9xV1mA7oG0sK3uZ8jR4nY6pM2LdX",
			VMID:           "tGBrM2SxkLN15HtkVa5M2XTG4JLMKpg1x8qjs5w8D43SXMUwK",
			ValidatorCount: 6,
			Validators: []types.ValidatorSummary{
				v("NodeID-KfX5DpwLsL0IgC3uS4a5oRqY0tU3W6nE9", "2.5K AVAX", 99.5, true),
				v("NodeID-LgY6EqxMtM1JhD4vT5b6pSrZ1uV4X7oF0", "2.3K AVAX", 99.7, true),
				v("NodeID-MhZ7FryNuN2KiE5wU6c7qTsA2vW5Y8pG1", "2.1K AVAX", 99.2, true),
				v("NodeID-NiA8GszOvO3LjF6xV7d8rUtB3wX6Z9qH2", "2.4K AVAX", 99.8, false),
				v("NodeID-OjB9HtAPwP4MkG7yW8e9sVuC4xY7A0rI3", "2.2K AVAX", 99.1, true),
				v("NodeID-PkC0IuBQxQ5NlH8zX9f0tWvD5yZ8B1sJ4", "2.6K AVAX", 99.6, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    false,
			Description:   "STEPN GO - A move-to-earn blockchain platform where users earn rewards for physical activity and movement.",
			Website:       "https://stepn.com/",
			TokenSymbol:   "GMT",
			TotalSupply:   "6,000,000,000",
			CreatedAt:     "2023-01-15",
			BlockHeight:   1234567,
			LastBlockTime: now.Add(-1800 * time.Millisecond),
			AvgBlockTime:  1.5,
			TPS:           67.8,
		},
		{
			ID:             "BMnF8vK2sL4PqC7dE9wT6xUr3jA5oY1mZ8hN4gB2fV0kS6pX9",
			Name:           "Merit Circle",
			SubnetID:       "CNqG9yM3uM5RsD8eF0xU7yVr4kB6pZ2oA9iO5hC3gW1lT7qY0",
			VMID:           "rGJBxNt2CiTqPu7TzDdNxOHx6J3KpG6bLhwHnTrHCJfpAACtY",
			ValidatorCount: 5,
			Validators: []types.ValidatorSummary{
				v("NodeID-QlD2JvCRyR6OmI9zA0g1uXwE6zB9C2tK5", "1.8K AVAX", 99.3, true),
				v("NodeID-RmE3KwDSzS7PnJ0AB1h2vYxF7AC0D3uL6", "2.1K AVAX", 99.6, true),
				v("NodeID-SnF4LxETaT8QoK1BC2i3wZyG8BD1E4vM7", "1.9K AVAX", 99.8, false),
				v("NodeID-ToG5MyFUbU9RpL2CD3j4xAzH9CE2F5wN8", "2.0K AVAX", 99.1, true),
				v("NodeID-UpH6NzGVcV0SqM3DE4k5yBaI0DF3G6xO9", "2.2K AVAX", 99.7, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    true,
			Description:   "Merit Circle - A decentralized gaming ecosystem focused on play-to-earn and NFT gaming infrastructure.",
			Website:       "https://meritcircle.io/",
			TokenSymbol:   "MC",
			TotalSupply:   "1,000,000,000",
			CreatedAt:     "2023-05-12",
			BlockHeight:   987654,
			LastBlockTime: now.Add(-2200 * time.Millisecond),
			AvgBlockTime:  2.1,
			TPS:           38.9,
		},
		{
			ID:             "DOoJ9zK3tM5SrF8gH2yV7xWs4kC6qZ3pB0jP6iD4hX2mT8qA1",
			Name:           "Shrapnel",
			SubnetID:       "EQpK0AoL4uN6TsG9hJ3xW8yXt5lD7rA4qC1kQ7jE5oY3nU9mS2",
			VMID:           "srEXiWaHuhNyGwPUi444Tu47ZEDwxTWrbQiuD7FmgSAQ6X7Dy",
			ValidatorCount: 7,
			Validators: []types.ValidatorSummary{
				v("NodeID-VqI7OaHWdW1TrN4EF5l6zA1J1EG4H7yP0", "2.3K AVAX", 99.4, true),
				v("NodeID-WrJ8PbIXeX2UsO5FG6m7AB2K2FH5I8zQ1", "2.1K AVAX", 99.8, true),
				v("NodeID-XsK9QcJYfY3VtP6GH7n8BC3L3GI6J9AR2", "2.5K AVAX", 99.2, true),
				v("NodeID-YtL0RdKZgZ4WuQ7HI8o9CD4M4HJ7K0BS3", "2.0K AVAX", 99.6, false),
				v("NodeID-ZuM1SeLAhA5XvR8IJ9p0DE5N5IK8L1CT4", "2.4K AVAX", 99.1, true),
				v("NodeID-AvN2TfMBiB6YwS9JK0q1EF6O6JL9M2DU5", "2.2K AVAX", 99.9, true),
				v("NodeID-BwO3UgNKjK7ZxT0KL1r2FG7P7KM0N3EV6", "1.9K AVAX", 99.3, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    false,
			Description:   "Shrapnel - A modular blockchain extraction shooter where players can create, customize, and monetize their gaming experiences.",
			Website:       "https://www.shrapnel.com/",
			TokenSymbol:   "SHRAP",
			TotalSupply:   "3,000,000,000",
			CreatedAt:     "2023-07-25",
			BlockHeight:   1567890,
			LastBlockTime: now.Add(-1600 * time.Millisecond),
			AvgBlockTime:  1.9,
			TPS:           54.7,
		},
		{
			ID:             "FRsN4hO5uP8WtZ2kM6vC9xAs3mE7qT1oY5jR8iG4fV0nU7pW2",
			Name:           "Numbers Protocol",
			SubnetID:       "GSsO5iP6vQ9XuA3lN7wD0yBt4nF8rU2pZ6kS9jH5gW1oV8qX3",
			VMID:           "mgj786NP7uDwBCcq6YwThhaN8FLyybkCa4zBWTQbNgmK6k9A6",
			ValidatorCount: 4,
			Validators: []types.ValidatorSummary{
				v("NodeID-CxP4VhOCkC8AyU1OM2s3GH8Q8NO1O4FW7", "1.7K AVAX", 99.0, true),
				v("NodeID-DyQ5WiPDlD9BzV2PN3t4HI9R9OP2P5GX8", "2.0K AVAX", 99.5, true),
				v("NodeID-EzR6XjQElE0CaW3QO4u5IJ0S0PQ3Q6HY9", "1.8K AVAX", 99.2, false),
				v("NodeID-FaS7YkRFmF1DbX4RP5v6JK1T1QR4R7IZ0", "1.9K AVAX", 99.8, true),
			},
			Status:        types.NetworkActive,
			ICMEnabled:    true,
			Description:   "Numbers Protocol - A decentralized photo network for creating, authenticating, and searching visual content with blockchain provenance.",
			Website:       "https://www.numbersprotocol.io/",
			TokenSymbol:   "NUM",
			TotalSupply:   "1,000,000,000",
			CreatedAt:     "2023-04-08",
			BlockHeight:   876543,
			LastBlockTime: now.Add(-2400 * time.Millisecond),
			AvgBlockTime:  2.4,
			TPS:           31.2,
		},
	}
}
