package tower

// PlayerId identifies a player. The top bit distinguishes bot-controlled
// players from human ones, so a PlayerId alone is enough to answer
// Bot() without a side lookup.
type PlayerId uint32

const botBit PlayerId = 1 << 31

// Bot reports whether this PlayerId belongs to a bot-controlled player.
func (p PlayerId) Bot() bool {
	return p&botBit != 0
}

// NewBotId sets the bot bit on a sequence number.
func NewBotId(sequence uint32) PlayerId {
	return PlayerId(sequence) | botBit
}
