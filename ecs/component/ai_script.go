package component

// AIScript points an agent at a tengo script whose onEnter/onExit hooks run
// on every state transition.
type AIScript struct {
	Path string
}

var AIScriptComponent = NewComponent[AIScript]()
