package names

// Adjectives and Nouns are the built-in word lists. Combined lengths that
// fall outside [MinCombinedLen, MaxCombinedLen] are skipped by the generator.
var Adjectives = []string{
	"Able", "Agile", "Amber", "Ancient", "Arctic", "Bold", "Brave", "Bright",
	"Brisk", "Calm", "Clever", "Cosmic", "Crimson", "Curious", "Daring", "Dusky",
	"Eager", "Electric", "Fancy", "Fearless", "Fierce", "Gentle", "Gilded", "Glad",
	"Golden", "Grand", "Happy", "Hidden", "Humble", "Icy", "Jolly", "Keen",
	"Kind", "Lively", "Lucky", "Lunar", "Mellow", "Merry", "Mighty", "Misty",
	"Noble", "Nimble", "Odd", "Patient", "Plucky", "Proud", "Quick", "Quiet",
	"Rapid", "Rusty", "Sandy", "Shiny", "Silent", "Silver", "Sleepy", "Sly",
	"Solar", "Speedy", "Stormy", "Sunny", "Swift", "Tidy", "Tiny", "Velvet",
	"Vivid", "Wandering", "Wild", "Wise", "Witty", "Zesty",
}

var Nouns = []string{
	"Badger", "Bear", "Beaver", "Bison", "Cobra", "Condor", "Coyote", "Crane",
	"Dingo", "Dolphin", "Eagle", "Falcon", "Ferret", "Finch", "Fox", "Gecko",
	"Gopher", "Hawk", "Heron", "Ibis", "Jackal", "Jaguar", "Koala", "Lemur",
	"Leopard", "Lion", "Lynx", "Magpie", "Marmot", "Marten", "Mole", "Moose",
	"Narwhal", "Newt", "Ocelot", "Octopus", "Otter", "Owl", "Panda", "Panther",
	"Pelican", "Penguin", "Puffin", "Quail", "Rabbit", "Raven", "Robin", "Salmon",
	"Seal", "Shark", "Sparrow", "Squid", "Stoat", "Swan", "Tapir", "Tiger",
	"Toucan", "Turtle", "Viper", "Walrus", "Weasel", "Whale", "Wolf", "Wombat",
	"Yak", "Zebra",
}
