package model

// Tweet represents the response of the remote post API
type Tweet struct {
	Data TweetData `json:"data"`
}

// TweetData holds the remote identifier and the echoed text
type TweetData struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}
