package kafka

// TopicPrefix namespaces every topic produced by this application.
const TopicPrefix = "petshop"

// Topic builds a fully-qualified topic name from a domain and an action,
// e.g. Topic("product", "created") == "petshop.product.created".
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}
