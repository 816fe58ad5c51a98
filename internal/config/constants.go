package config

// AppName is used for the config directory, log file and window title
const AppName = "didyouknow"

// Title is shown above the fact card
const Title = "Did You Know?"

// WelcomeMessage is shown until the first fact arrives
const WelcomeMessage = "Fetching something you probably didn't know..."
