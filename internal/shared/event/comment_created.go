package event

// CommentCreatedDestination is the subject for newly posted comments.
const CommentCreatedDestination string = "comment_created"

// CommentCreatedDestinationConsumerNotification is the queue group for the
// notification consumer.
const CommentCreatedDestinationConsumerNotification string = "comment_created_notification"

// CommentCreatedMessage is published after a comment is stored.
type CommentCreatedMessage struct {
	CommentID  int64  `json:"comment_id"`
	PostID     int64  `json:"post_id"`
	PostTitle  string `json:"post_title"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
}
