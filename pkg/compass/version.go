package compass

const Version = "0.1.0"
