package entity

// Subjects очередей и топиков рассылки
const (
	SubjectFaceConverter = "faceConverter"
	SubjectHello         = "hello"

	TopicFaces     = "/topic/faces"
	TopicGreetings = "/topic/greetings"
)

// Message одна доставка из очереди
type Message struct {
	ID      string // UUID, выдаётся при публикации
	Subject string // имя очереди
	Payload []byte
}
