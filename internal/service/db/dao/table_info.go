package dao

const (
	// CollectionAccount 存储所有登录主体（用户、管理员、超级管理员）的表。
	CollectionAccount = "accounts"

	// CollectionChannel 电台频道。
	CollectionChannel = "channels"

	// CollectionUploadTrack 用户投稿。
	CollectionUploadTrack = "upload_tracks"
	// CollectionApprovedTrack 审核通过后的播出计划。
	CollectionApprovedTrack = "approved_tracks"

	// 频道内容
	CollectionBroadcaster        = "broadcasters"
	CollectionProgram            = "programs"
	CollectionInterview          = "interviews"
	CollectionNews               = "news"
	CollectionEvent              = "events"
	CollectionAdvertisement      = "advertisements"
	CollectionInterviewApplicant = "interview_applicants"
	CollectionCompetition        = "competitions"
	CollectionCompetitionUser    = "competition_users"
	CollectionStaticInfo         = "static_infos"
)
